package tables

import (
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

func init() {
	registerProjects()
	registerServiceRequests()
	registerBusinessProcesses()
}

func registerProjects() {
	core.Register(core.Descriptor{
		Model:      core.ModelProjects,
		Label:      "Projects",
		Collection: entities.TableProjects,
		Required:   []string{"id", "name", "start_date"},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Project{
				ID:          c.text("id"),
				Name:        c.text("name"),
				Description: c.optText("description"),
				StartDate:   c.date("start_date"),
				EndDate:     c.optDate("end_date"),
			})
		},
	})
}

func registerServiceRequests() {
	core.Register(core.Descriptor{
		Model:      core.ModelServiceRequests,
		Label:      "Service Requests",
		Collection: entities.TableServiceRequests,
		Required:   []string{"id", "employee_id", "request_date", "description", "workplace_id", "status_id"},
		ForeignKeys: []core.ForeignKey{
			{Column: "employee_id", Collection: entities.TableEmployees},
			{Column: "workplace_id", Collection: entities.TableWorkplaces},
			{Column: "status_id", Collection: entities.TableEquipmentServiceStatuses},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.ServiceRequest{
				ID:          c.text("id"),
				EmployeeID:  c.text("employee_id"),
				RequestDate: c.date("request_date"),
				Description: c.text("description"),
				WorkplaceID: c.text("workplace_id"),
				StatusID:    c.text("status_id"),
			})
		},
	})
}

func registerBusinessProcesses() {
	core.Register(core.Descriptor{
		Model:      core.ModelBusinessProcesses,
		Label:      "Business Processes",
		Collection: entities.TableBusinessProcesses,
		Required:   []string{"id", "responsible_employee_id", "name", "project_id"},
		ForeignKeys: []core.ForeignKey{
			{Column: "responsible_employee_id", Collection: entities.TableEmployees},
			{Column: "project_id", Collection: entities.TableProjects},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.BusinessProcess{
				ID:                    c.text("id"),
				ResponsibleEmployeeID: c.text("responsible_employee_id"),
				Name:                  c.text("name"),
				Description:           c.optText("description"),
				ProjectID:             c.text("project_id"),
			})
		},
	})
}
