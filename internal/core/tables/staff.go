package tables

import (
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

func init() {
	registerEmployees()
	registerDepartments()
	registerWorkplaces()
}

func registerEmployees() {
	core.Register(core.Descriptor{
		Model:      core.ModelEmployees,
		Label:      "Employees",
		Collection: entities.TableEmployees,
		Required:   []string{"id", "department_id", "full_name", "position", "workplace_id", "hire_date"},
		ForeignKeys: []core.ForeignKey{
			{Column: "department_id", Collection: entities.TableDepartments},
			{Column: "workplace_id", Collection: entities.TableWorkplaces},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Employee{
				ID:           c.text("id"),
				DepartmentID: c.text("department_id"),
				FullName:     c.text("full_name"),
				Position:     c.text("position"),
				WorkplaceID:  c.text("workplace_id"),
				HireDate:     c.date("hire_date"),
				Phone:        c.optText("phone"),
				Email:        c.optText("email"),
			})
		},
	})
}

func registerDepartments() {
	core.Register(core.Descriptor{
		Model:      core.ModelDepartments,
		Label:      "Departments",
		Collection: entities.TableDepartments,
		Required:   []string{"id", "name"},
		ForeignKeys: []core.ForeignKey{
			{Column: "manager_id", Collection: entities.TableEmployees},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Department{
				ID:        c.text("id"),
				Name:      c.text("name"),
				ManagerID: c.optText("manager_id"),
			})
		},
	})
}

func registerWorkplaces() {
	core.Register(core.Descriptor{
		Model:      core.ModelWorkplaces,
		Label:      "Workplaces",
		Collection: entities.TableWorkplaces,
		Required:   []string{"id", "location", "equipment_status_id"},
		ForeignKeys: []core.ForeignKey{
			{Column: "equipment_status_id", Collection: entities.TableEquipmentServiceStatuses},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Workplace{
				ID:                c.text("id"),
				Location:          c.text("location"),
				EquipmentDetails:  c.optText("equipment_details"),
				EquipmentStatusID: c.text("equipment_status_id"),
			})
		},
	})
}
