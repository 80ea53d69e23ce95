package tables

import (
	"github.com/JonMunkholm/barista/internal/core"
	"github.com/JonMunkholm/barista/internal/entities"
)

func init() {
	registerClients()
	registerPurchases()
}

func registerClients() {
	core.Register(core.Descriptor{
		Model:      core.ModelClients,
		Label:      "Clients",
		Collection: entities.TableClients,
		Required:   []string{"id", "favorite_coffee_type_id", "full_name"},
		ForeignKeys: []core.ForeignKey{
			{Column: "favorite_coffee_type_id", Collection: entities.TableCoffeeProductTypes},
		},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Client{
				ID:                   c.text("id"),
				FavoriteCoffeeTypeID: c.text("favorite_coffee_type_id"),
				FullName:             c.text("full_name"),
				Phone:                c.optText("phone"),
				Email:                c.optText("email"),
			})
		},
	})
}

func registerPurchases() {
	core.Register(core.Descriptor{
		Model:      core.ModelPurchases,
		Label:      "Purchases",
		Collection: entities.TablePurchases,
		Required:   []string{"id", "employee_id", "date", "supplier", "amount", "coffee_product_type_id"},
		ForeignKeys: []core.ForeignKey{
			{Column: "employee_id", Collection: entities.TableEmployees},
			{Column: "coffee_product_type_id", Collection: entities.TableCoffeeProductTypes},
		},
		NumericColumns: []string{"amount"},
		Build: func(row core.Row) (core.Entity, error) {
			c := newCells(row)
			return finish(c, &entities.Purchase{
				ID:                  c.text("id"),
				EmployeeID:          c.text("employee_id"),
				Date:                c.date("date"),
				Supplier:            c.text("supplier"),
				Amount:              c.amount("amount"),
				CoffeeProductTypeID: c.text("coffee_product_type_id"),
			})
		},
	})
}
