package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"interviewprep/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Catalog resolves company and role reference data
type Catalog interface {
	Company(id string) (model.Company, bool)
	Role(id string) (model.Role, bool)
	Companies() []model.Company
	Roles() []model.Role
}

// Static is an immutable in-memory catalog
type Static struct {
	companies   []model.Company
	roles       []model.Role
	companyByID map[string]model.Company
	roleByID    map[string]model.Role
}

type catalogFile struct {
	Companies []model.Company `yaml:"companies"`
	Roles     []model.Role    `yaml:"roles"`
}

// New builds a catalog from explicit slices, rejecting blank or duplicate ids
func New(companies []model.Company, roles []model.Role) (*Static, error) {
	c := &Static{
		companies:   make([]model.Company, 0, len(companies)),
		roles:       make([]model.Role, 0, len(roles)),
		companyByID: make(map[string]model.Company, len(companies)),
		roleByID:    make(map[string]model.Role, len(roles)),
	}
	for _, co := range companies {
		if strings.TrimSpace(co.ID) == "" {
			return nil, fmt.Errorf("company id is required")
		}
		if _, dup := c.companyByID[co.ID]; dup {
			return nil, fmt.Errorf("duplicate company id %q", co.ID)
		}
		if co.Name == "" {
			co.Name = co.ID
		}
		c.companyByID[co.ID] = co
		c.companies = append(c.companies, co)
	}
	for _, r := range roles {
		if strings.TrimSpace(r.ID) == "" {
			return nil, fmt.Errorf("role id is required")
		}
		if _, dup := c.roleByID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate role id %q", r.ID)
		}
		if r.Title == "" {
			r.Title = r.ID
		}
		c.roleByID[r.ID] = r
		c.roles = append(c.roles, r)
	}
	return c, nil
}

// Parse reads a catalog from YAML
func Parse(data []byte) (*Static, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return New(f.Companies, f.Roles)
}

// Default returns the catalog bundled with the binary
func Default() (*Static, error) {
	return Parse(defaultCatalog)
}

func (c *Static) Company(id string) (model.Company, bool) {
	co, ok := c.companyByID[id]
	return co, ok
}

func (c *Static) Role(id string) (model.Role, bool) {
	r, ok := c.roleByID[id]
	return r, ok
}

// Companies returns a copy in declaration order
func (c *Static) Companies() []model.Company {
	out := make([]model.Company, len(c.companies))
	copy(out, c.companies)
	return out
}

// Roles returns a copy in declaration order
func (c *Static) Roles() []model.Role {
	out := make([]model.Role, len(c.roles))
	copy(out, c.roles)
	return out
}
