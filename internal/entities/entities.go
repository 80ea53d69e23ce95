// Package entities holds the typed records the importer writes.
//
// Each entity carries gorm tags for the embedded SQLite store, validate tags
// for shape checks before staging, and Columns/Values for the PostgreSQL
// store, which builds its INSERT statements from them.
package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection names. These are the table names in both stores.
const (
	TableEquipmentServiceStatuses = "equipment_service_statuses"
	TableCoffeeProductTypes       = "coffee_product_types"
	TableEmployees                = "employees"
	TableDepartments              = "departments"
	TableWorkplaces               = "workplaces"
	TableProjects                 = "projects"
	TableClients                  = "clients"
	TableBusinessProcesses        = "business_processes"
	TablePurchases                = "purchases"
	TableServiceRequests          = "service_requests"
)

type EquipmentServiceStatus struct {
	ID   string `gorm:"primaryKey;size:50" validate:"required,max=50"`
	Name string `gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
}

func (EquipmentServiceStatus) TableName() string    { return TableEquipmentServiceStatuses }
func (e *EquipmentServiceStatus) PrimaryKey() string { return e.ID }
func (e *EquipmentServiceStatus) Columns() []string  { return []string{"id", "name"} }
func (e *EquipmentServiceStatus) Values() []any      { return []any{e.ID, e.Name} }

type CoffeeProductType struct {
	ID   string `gorm:"primaryKey;size:50" validate:"required,max=50"`
	Name string `gorm:"size:100;not null;uniqueIndex" validate:"required,max=100"`
}

func (CoffeeProductType) TableName() string    { return TableCoffeeProductTypes }
func (e *CoffeeProductType) PrimaryKey() string { return e.ID }
func (e *CoffeeProductType) Columns() []string  { return []string{"id", "name"} }
func (e *CoffeeProductType) Values() []any      { return []any{e.ID, e.Name} }

type Employee struct {
	ID           string    `gorm:"primaryKey;size:50" validate:"required,max=50"`
	DepartmentID string    `gorm:"size:50;not null;index" validate:"required,max=50"`
	FullName     string    `gorm:"size:150;not null" validate:"required,max=150"`
	Position     string    `gorm:"size:100;not null" validate:"required,max=100"`
	WorkplaceID  string    `gorm:"size:50;not null;index" validate:"required,max=50"`
	HireDate     time.Time `gorm:"type:date;not null"`
	Phone        *string   `gorm:"size:20" validate:"omitempty,max=20"`
	Email        *string   `gorm:"size:100" validate:"omitempty,max=100"`
}

func (Employee) TableName() string    { return TableEmployees }
func (e *Employee) PrimaryKey() string { return e.ID }
func (e *Employee) Columns() []string {
	return []string{"id", "department_id", "full_name", "position", "workplace_id", "hire_date", "phone", "email"}
}
func (e *Employee) Values() []any {
	return []any{e.ID, e.DepartmentID, e.FullName, e.Position, e.WorkplaceID, e.HireDate, e.Phone, e.Email}
}

type Department struct {
	ID        string  `gorm:"primaryKey;size:50" validate:"required,max=50"`
	Name      string  `gorm:"size:100;not null" validate:"required,max=100"`
	ManagerID *string `gorm:"size:50" validate:"omitempty,max=50"`
}

func (Department) TableName() string    { return TableDepartments }
func (e *Department) PrimaryKey() string { return e.ID }
func (e *Department) Columns() []string  { return []string{"id", "name", "manager_id"} }
func (e *Department) Values() []any      { return []any{e.ID, e.Name, e.ManagerID} }

type Workplace struct {
	ID                string  `gorm:"primaryKey;size:50" validate:"required,max=50"`
	Location          string  `gorm:"size:200;not null" validate:"required,max=200"`
	EquipmentDetails  *string `gorm:"type:text"`
	EquipmentStatusID string  `gorm:"size:50;not null;index" validate:"required,max=50"`
}

func (Workplace) TableName() string    { return TableWorkplaces }
func (e *Workplace) PrimaryKey() string { return e.ID }
func (e *Workplace) Columns() []string {
	return []string{"id", "location", "equipment_details", "equipment_status_id"}
}
func (e *Workplace) Values() []any {
	return []any{e.ID, e.Location, e.EquipmentDetails, e.EquipmentStatusID}
}

type Project struct {
	ID          string     `gorm:"primaryKey;size:50" validate:"required,max=50"`
	Name        string     `gorm:"size:150;not null" validate:"required,max=150"`
	Description *string    `gorm:"type:text"`
	StartDate   time.Time  `gorm:"type:date;not null"`
	EndDate     *time.Time `gorm:"type:date"`
}

func (Project) TableName() string    { return TableProjects }
func (e *Project) PrimaryKey() string { return e.ID }
func (e *Project) Columns() []string {
	return []string{"id", "name", "description", "start_date", "end_date"}
}
func (e *Project) Values() []any {
	return []any{e.ID, e.Name, e.Description, e.StartDate, e.EndDate}
}

type Client struct {
	ID                   string  `gorm:"primaryKey;size:50" validate:"required,max=50"`
	FavoriteCoffeeTypeID string  `gorm:"size:50;not null;index" validate:"required,max=50"`
	FullName             string  `gorm:"size:150;not null" validate:"required,max=150"`
	Phone                *string `gorm:"size:20" validate:"omitempty,max=20"`
	Email                *string `gorm:"size:100" validate:"omitempty,max=100"`
}

func (Client) TableName() string    { return TableClients }
func (e *Client) PrimaryKey() string { return e.ID }
func (e *Client) Columns() []string {
	return []string{"id", "favorite_coffee_type_id", "full_name", "phone", "email"}
}
func (e *Client) Values() []any {
	return []any{e.ID, e.FavoriteCoffeeTypeID, e.FullName, e.Phone, e.Email}
}

type BusinessProcess struct {
	ID                    string  `gorm:"primaryKey;size:50" validate:"required,max=50"`
	ResponsibleEmployeeID string  `gorm:"size:50;not null;index" validate:"required,max=50"`
	Name                  string  `gorm:"size:150;not null" validate:"required,max=150"`
	Description           *string `gorm:"type:text"`
	ProjectID             string  `gorm:"size:50;not null;index" validate:"required,max=50"`
}

func (BusinessProcess) TableName() string    { return TableBusinessProcesses }
func (e *BusinessProcess) PrimaryKey() string { return e.ID }
func (e *BusinessProcess) Columns() []string {
	return []string{"id", "responsible_employee_id", "name", "description", "project_id"}
}
func (e *BusinessProcess) Values() []any {
	return []any{e.ID, e.ResponsibleEmployeeID, e.Name, e.Description, e.ProjectID}
}

type Purchase struct {
	ID                  string          `gorm:"primaryKey;size:50" validate:"required,max=50"`
	EmployeeID          string          `gorm:"size:50;not null;index" validate:"required,max=50"`
	Date                time.Time       `gorm:"type:date;not null"`
	Supplier            string          `gorm:"size:150;not null" validate:"required,max=150"`
	Amount              decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CoffeeProductTypeID string          `gorm:"size:50;not null;index" validate:"required,max=50"`
}

func (Purchase) TableName() string    { return TablePurchases }
func (e *Purchase) PrimaryKey() string { return e.ID }
func (e *Purchase) Columns() []string {
	return []string{"id", "employee_id", "date", "supplier", "amount", "coffee_product_type_id"}
}
func (e *Purchase) Values() []any {
	return []any{e.ID, e.EmployeeID, e.Date, e.Supplier, e.Amount, e.CoffeeProductTypeID}
}

type ServiceRequest struct {
	ID          string    `gorm:"primaryKey;size:50" validate:"required,max=50"`
	EmployeeID  string    `gorm:"size:50;not null;index" validate:"required,max=50"`
	RequestDate time.Time `gorm:"type:date;not null"`
	Description string    `gorm:"type:text;not null" validate:"required"`
	WorkplaceID string    `gorm:"size:50;not null;index" validate:"required,max=50"`
	StatusID    string    `gorm:"size:50;not null;index" validate:"required,max=50"`
}

func (ServiceRequest) TableName() string    { return TableServiceRequests }
func (e *ServiceRequest) PrimaryKey() string { return e.ID }
func (e *ServiceRequest) Columns() []string {
	return []string{"id", "employee_id", "request_date", "description", "workplace_id", "status_id"}
}
func (e *ServiceRequest) Values() []any {
	return []any{e.ID, e.EmployeeID, e.RequestDate, e.Description, e.WorkplaceID, e.StatusID}
}

// All returns one zero value of every entity, in dependency-free order, for AutoMigrate.
func All() []any {
	return []any{
		&EquipmentServiceStatus{},
		&CoffeeProductType{},
		&Department{},
		&Workplace{},
		&Employee{},
		&Project{},
		&Client{},
		&BusinessProcess{},
		&Purchase{},
		&ServiceRequest{},
	}
}
