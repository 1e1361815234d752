package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListProjects calls GET /projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject calls GET /projects/{id}.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject calls POST /projects.
func (c *Client) CreateProject(ctx context.Context, project Project) (*Project, error) {
	var created Project
	if err := c.do(ctx, http.MethodPost, "/projects", project, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProject calls PUT /projects/{id}.
func (c *Client) UpdateProject(ctx context.Context, id string, project Project) (*Project, error) {
	var updated Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), project, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProject calls DELETE /projects/{id}.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// ListSkills calls GET /skills.
func (c *Client) ListSkills(ctx context.Context) ([]Skill, error) {
	var skills []Skill
	if err := c.do(ctx, http.MethodGet, "/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// GetSkill calls GET /skills/{id}.
func (c *Client) GetSkill(ctx context.Context, id string) (*Skill, error) {
	var skill Skill
	if err := c.do(ctx, http.MethodGet, "/skills/"+url.PathEscape(id), nil, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}

// CreateSkill calls POST /skills.
func (c *Client) CreateSkill(ctx context.Context, skill Skill) (*Skill, error) {
	var created Skill
	if err := c.do(ctx, http.MethodPost, "/skills", skill, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSkill calls PUT /skills/{id}.
func (c *Client) UpdateSkill(ctx context.Context, id string, skill Skill) (*Skill, error) {
	var updated Skill
	if err := c.do(ctx, http.MethodPut, "/skills/"+url.PathEscape(id), skill, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSkill calls DELETE /skills/{id}.
func (c *Client) DeleteSkill(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/skills/"+url.PathEscape(id), nil, nil)
}

// ListCertifications calls GET /certifications.
func (c *Client) ListCertifications(ctx context.Context) ([]Certification, error) {
	var certs []Certification
	if err := c.do(ctx, http.MethodGet, "/certifications", nil, &certs); err != nil {
		return nil, err
	}
	return certs, nil
}

// GetCertification calls GET /certifications/{id}.
func (c *Client) GetCertification(ctx context.Context, id string) (*Certification, error) {
	var cert Certification
	if err := c.do(ctx, http.MethodGet, "/certifications/"+url.PathEscape(id), nil, &cert); err != nil {
		return nil, err
	}
	return &cert, nil
}

// CreateCertification calls POST /certifications.
func (c *Client) CreateCertification(ctx context.Context, cert Certification) (*Certification, error) {
	var created Certification
	if err := c.do(ctx, http.MethodPost, "/certifications", cert, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCertification calls PUT /certifications/{id}.
func (c *Client) UpdateCertification(ctx context.Context, id string, cert Certification) (*Certification, error) {
	var updated Certification
	if err := c.do(ctx, http.MethodPut, "/certifications/"+url.PathEscape(id), cert, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCertification calls DELETE /certifications/{id}.
func (c *Client) DeleteCertification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/certifications/"+url.PathEscape(id), nil, nil)
}
