package persistence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/domain"
)

// Seed is the YAML document loaded by `empmgr setup --seed`. Roles and
// employees refer to their department, role and manager by key, so the file
// never depends on database-assigned ids.
type Seed struct {
	Departments []SeedDepartment `yaml:"departments"`
	Roles       []SeedRole       `yaml:"roles"`
	Employees   []SeedEmployee   `yaml:"employees"`
}

// SeedDepartment is a department entry. Key defaults to Name.
type SeedDepartment struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

// SeedRole is a role entry. Key defaults to Title.
type SeedRole struct {
	Key        string  `yaml:"key"`
	Title      string  `yaml:"title"`
	Salary     float64 `yaml:"salary"`
	Department string  `yaml:"department"`
}

// SeedEmployee is an employee entry. Key defaults to "first last".
type SeedEmployee struct {
	Key       string `yaml:"key"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
	Manager   string `yaml:"manager,omitempty"`
}

// SeedResult counts the rows created by ApplySeed.
type SeedResult struct {
	Departments int
	Roles       int
	Employees   int
}

// SeedTarget is what ApplySeed writes through.
type SeedTarget interface {
	AddDepartment(ctx context.Context, name string) (*domain.Department, error)
	AddRole(ctx context.Context, title string, salary float64, departmentID int64) (*domain.Role, error)
	AddEmployee(ctx context.Context, firstName, lastName string, roleID int64, managerID *int64) (*domain.Employee, error)
	UpdateEmployeeManager(ctx context.Context, employeeID int64, managerID *int64) (*domain.Employee, error)
}

// LoadSeedFile reads and validates a seed file from disk.
func LoadSeedFile(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed %s: %w", path, err)
	}
	defer f.Close()
	return LoadSeed(f)
}

// LoadSeed decodes and validates a seed document. Unknown fields are rejected.
func LoadSeed(r io.Reader) (*Seed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed Seed
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	seed.normalize()
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *Seed) normalize() {
	for i := range s.Departments {
		d := &s.Departments[i]
		d.Name = strings.TrimSpace(d.Name)
		if d.Key == "" {
			d.Key = d.Name
		}
	}
	for i := range s.Roles {
		r := &s.Roles[i]
		r.Title = strings.TrimSpace(r.Title)
		if r.Key == "" {
			r.Key = r.Title
		}
	}
	for i := range s.Employees {
		e := &s.Employees[i]
		e.FirstName = strings.TrimSpace(e.FirstName)
		e.LastName = strings.TrimSpace(e.LastName)
		if e.Key == "" {
			e.Key = e.FirstName + " " + e.LastName
		}
	}
}

// Validate checks key uniqueness and that every reference resolves.
func (s *Seed) Validate() error {
	var errs []error

	depts := make(map[string]bool, len(s.Departments))
	for i, d := range s.Departments {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("departments[%d]: name required", i))
		}
		if depts[d.Key] {
			errs = append(errs, fmt.Errorf("departments[%d]: duplicate key %q", i, d.Key))
		}
		depts[d.Key] = true
	}

	roles := make(map[string]bool, len(s.Roles))
	for i, r := range s.Roles {
		if r.Title == "" {
			errs = append(errs, fmt.Errorf("roles[%d]: title required", i))
		}
		if r.Salary <= 0 {
			errs = append(errs, fmt.Errorf("roles[%d]: salary must be positive", i))
		}
		if !depts[r.Department] {
			errs = append(errs, fmt.Errorf("roles[%d]: unknown department %q", i, r.Department))
		}
		if roles[r.Key] {
			errs = append(errs, fmt.Errorf("roles[%d]: duplicate key %q", i, r.Key))
		}
		roles[r.Key] = true
	}

	employees := make(map[string]bool, len(s.Employees))
	for i, e := range s.Employees {
		if e.FirstName == "" || e.LastName == "" {
			errs = append(errs, fmt.Errorf("employees[%d]: first_name and last_name required", i))
		}
		if !roles[e.Role] {
			errs = append(errs, fmt.Errorf("employees[%d]: unknown role %q", i, e.Role))
		}
		if employees[e.Key] {
			errs = append(errs, fmt.Errorf("employees[%d]: duplicate key %q", i, e.Key))
		}
		employees[e.Key] = true
	}
	for i, e := range s.Employees {
		if e.Manager == "" {
			continue
		}
		if e.Manager == e.Key {
			errs = append(errs, fmt.Errorf("employees[%d]: cannot manage themselves", i))
		} else if !employees[e.Manager] {
			errs = append(errs, fmt.Errorf("employees[%d]: unknown manager %q", i, e.Manager))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid seed: %w", errors.Join(errs...))
	}
	return nil
}

// ApplySeed inserts the seed through target. Employees are inserted first and
// linked to their managers afterwards, so entry order in the file does not
// matter.
func ApplySeed(ctx context.Context, seed *Seed, target SeedTarget, logger *zap.Logger) (SeedResult, error) {
	var result SeedResult

	deptIDs := make(map[string]int64, len(seed.Departments))
	for _, d := range seed.Departments {
		dept, err := target.AddDepartment(ctx, d.Name)
		if err != nil {
			return result, fmt.Errorf("seed department %q: %w", d.Name, err)
		}
		deptIDs[d.Key] = dept.ID
		result.Departments++
	}

	roleIDs := make(map[string]int64, len(seed.Roles))
	for _, r := range seed.Roles {
		role, err := target.AddRole(ctx, r.Title, r.Salary, deptIDs[r.Department])
		if err != nil {
			return result, fmt.Errorf("seed role %q: %w", r.Title, err)
		}
		roleIDs[r.Key] = role.ID
		result.Roles++
	}

	empIDs := make(map[string]int64, len(seed.Employees))
	for _, e := range seed.Employees {
		emp, err := target.AddEmployee(ctx, e.FirstName, e.LastName, roleIDs[e.Role], nil)
		if err != nil {
			return result, fmt.Errorf("seed employee %q: %w", e.Key, err)
		}
		empIDs[e.Key] = emp.ID
		result.Employees++
	}

	for _, e := range seed.Employees {
		if e.Manager == "" {
			continue
		}
		managerID := empIDs[e.Manager]
		if _, err := target.UpdateEmployeeManager(ctx, empIDs[e.Key], &managerID); err != nil {
			return result, fmt.Errorf("seed manager for %q: %w", e.Key, err)
		}
	}

	logger.Info("seed applied",
		zap.Int("departments", result.Departments),
		zap.Int("roles", result.Roles),
		zap.Int("employees", result.Employees))
	return result, nil
}
