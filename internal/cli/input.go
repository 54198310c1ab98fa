package cli

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// askText asks until a non-blank answer is given.
func (c *Controller) askText(ctx context.Context, label string) (string, error) {
	for {
		answer, err := c.prompt.Input(ctx, label)
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		warnColor.Fprintln(c.out, "This field is required.")
	}
}

// askID asks until a positive whole number is given.
func (c *Controller) askID(ctx context.Context, label string) (int64, error) {
	for {
		answer, err := c.prompt.Input(ctx, label)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
		if convErr == nil && n > 0 {
			return n, nil
		}
		warnColor.Fprintln(c.out, "Please enter a valid ID (a positive whole number).")
	}
}

// askOptionalID is askID that also accepts a blank answer, returned as nil.
func (c *Controller) askOptionalID(ctx context.Context, label string) (*int64, error) {
	for {
		answer, err := c.prompt.Input(ctx, label)
		if err != nil {
			return nil, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return nil, nil
		}
		n, convErr := strconv.ParseInt(answer, 10, 64)
		if convErr == nil && n > 0 {
			return &n, nil
		}
		warnColor.Fprintln(c.out, "Please enter a valid ID or leave blank.")
	}
}

// maxSalary is the largest value a NUMERIC(12,2) column holds.
const maxSalary = 9999999999.99

// askSalary asks until a positive, finite decimal the store can hold is given.
func (c *Controller) askSalary(ctx context.Context, label string) (float64, error) {
	for {
		answer, err := c.prompt.Input(ctx, label)
		if err != nil {
			return 0, err
		}
		v, convErr := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if convErr == nil && v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) && v <= maxSalary {
			return v, nil
		}
		warnColor.Fprintf(c.out, "Please enter a positive number no greater than %.2f.\n", maxSalary)
	}
}

// askExisting asks for an id until lookup finds it. lookup returns the
// display name of the row, or ok=false when no row has the id.
func (c *Controller) askExisting(ctx context.Context, label, entity string, lookup func(context.Context, int64) (string, bool, error)) (int64, string, error) {
	for {
		n, err := c.askID(ctx, label)
		if err != nil {
			return 0, "", err
		}
		name, ok, err := lookup(ctx, n)
		if err != nil {
			return 0, "", err
		}
		if ok {
			return n, name, nil
		}
		warnColor.Fprintf(c.out, "No %s with ID %d. Please try again.\n", entity, n)
	}
}

func (c *Controller) findDepartment(ctx context.Context, deptID int64) (string, bool, error) {
	depts, err := c.org.ListDepartments(ctx)
	if err != nil {
		return "", false, err
	}
	for _, d := range depts {
		if d.ID == deptID {
			return d.Name, true, nil
		}
	}
	return "", false, nil
}

func (c *Controller) findRole(ctx context.Context, roleID int64) (string, bool, error) {
	roles, err := c.org.ListRoles(ctx)
	if err != nil {
		return "", false, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return r.Title, true, nil
		}
	}
	return "", false, nil
}

func (c *Controller) findEmployee(ctx context.Context, empID int64) (string, bool, error) {
	emps, err := c.org.ListEmployees(ctx)
	if err != nil {
		return "", false, err
	}
	for _, e := range emps {
		if e.ID == empID {
			return e.FullName(), true, nil
		}
	}
	return "", false, nil
}
