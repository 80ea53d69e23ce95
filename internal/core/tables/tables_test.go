package tables

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

func TestEveryModelIsRegistered(t *testing.T) {
	assert.Equal(t, len(core.AllModelTypes()), core.ModelCount())
	for _, m := range core.AllModelTypes() {
		_, ok := core.Get(m)
		assert.True(t, ok, "model %s not registered", m)
	}
}

func TestRequiredColumns(t *testing.T) {
	tests := map[string][]string{
		"employees":          {"id", "department_id", "full_name", "position", "workplace_id", "hire_date"},
		"clients":            {"id", "favorite_coffee_type_id", "full_name"},
		"projects":           {"id", "name", "start_date"},
		"departments":        {"id", "name"},
		"workplaces":         {"id", "location", "equipment_status_id"},
		"purchases":          {"id", "employee_id", "date", "supplier", "amount", "coffee_product_type_id"},
		"service_requests":   {"id", "employee_id", "request_date", "description", "workplace_id", "status_id"},
		"business_processes": {"id", "responsible_employee_id", "name", "project_id"},
	}

	for tag, want := range tests {
		t.Run(tag, func(t *testing.T) {
			d, err := core.Lookup(tag)
			require.NoError(t, err)
			assert.Equal(t, want, d.Required)
			assert.Equal(t, tag, d.Collection)
		})
	}
}

func TestForeignKeysOfSourceModels(t *testing.T) {
	emp, _ := core.Get(core.ModelEmployees)
	assert.ElementsMatch(t, []core.ForeignKey{
		{Column: "department_id", Collection: entities.TableDepartments},
		{Column: "workplace_id", Collection: entities.TableWorkplaces},
	}, emp.ForeignKeys)

	cli, _ := core.Get(core.ModelClients)
	assert.Equal(t, []core.ForeignKey{
		{Column: "favorite_coffee_type_id", Collection: entities.TableCoffeeProductTypes},
	}, cli.ForeignKeys)
}

func TestBuildEmployee(t *testing.T) {
	d, _ := core.Get(core.ModelEmployees)
	hired := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	e, err := d.Build(core.Row{
		"id":            core.Text("E1"),
		"department_id": core.Text("D1"),
		"full_name":     core.Text("Ada Lovelace"),
		"position":      core.Text("Barista"),
		"workplace_id":  core.Text("W1"),
		"hire_date":     core.Date(hired),
		"email":         core.Text("ada@example.com"),
		"phone":         core.Missing(),
	})
	require.NoError(t, err)

	emp, ok := e.(*entities.Employee)
	require.True(t, ok)
	assert.Equal(t, "E1", emp.PrimaryKey())
	assert.Equal(t, hired, emp.HireDate)
	require.NotNil(t, emp.Email)
	assert.Equal(t, "ada@example.com", *emp.Email)
	assert.Nil(t, emp.Phone)
}

func TestBuildRejectsMissingAndInvalidFields(t *testing.T) {
	d, _ := core.Get(core.ModelEmployees)

	_, err := d.Build(core.Row{
		"id":            core.Text("E1"),
		"department_id": core.Text("D1"),
		"full_name":     core.Missing(),
		"position":      core.Text("Barista"),
		"workplace_id":  core.Text("W1"),
		"hire_date":     core.Text("not a date"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full_name is missing")
	assert.Contains(t, err.Error(), "invalid date in hire_date")
}

func TestBuildRejectsOverlongField(t *testing.T) {
	d, _ := core.Get(core.ModelDepartments)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'x'
	}
	_, err := d.Build(core.Row{
		"id":   core.Text("D1"),
		"name": core.Text(string(long)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name exceeds 100 characters")
}

func TestBuildPurchaseAmount(t *testing.T) {
	d, _ := core.Get(core.ModelPurchases)
	base := core.Row{
		"id":                     core.Text("P1"),
		"employee_id":            core.Text("E1"),
		"date":                   core.Text("2024-03-01"),
		"supplier":               core.Text("Roasters Ltd"),
		"coffee_product_type_id": core.Text("C1"),
	}

	t.Run("rounds to cents", func(t *testing.T) {
		row := cloneRow(base)
		row["amount"] = core.Number(decimal.RequireFromString("12.345"))
		e, err := d.Build(row)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("12.35").Equal(e.(*entities.Purchase).Amount))
	})

	t.Run("parses untransformed text", func(t *testing.T) {
		row := cloneRow(base)
		row["amount"] = core.Text("$1,200.50")
		e, err := d.Build(row)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1200.50").Equal(e.(*entities.Purchase).Amount))
	})

	t.Run("rejects out of range", func(t *testing.T) {
		row := cloneRow(base)
		row["amount"] = core.Number(decimal.RequireFromString("100000000"))
		_, err := d.Build(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount is out of range")
	})
}

func TestBuildProjectOptionalEndDate(t *testing.T) {
	d, _ := core.Get(core.ModelProjects)

	e, err := d.Build(core.Row{
		"id":         core.Text("PR1"),
		"name":       core.Text("Espresso bar"),
		"start_date": core.Text("2024-01-01"),
		"end_date":   core.Missing(),
	})
	require.NoError(t, err)
	assert.Nil(t, e.(*entities.Project).EndDate)
	assert.Nil(t, e.(*entities.Project).Description)
}

func cloneRow(r core.Row) core.Row {
	out := make(core.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
