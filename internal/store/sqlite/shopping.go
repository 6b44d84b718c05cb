package sqlite

import (
	"context"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

// GetShoppingList aggregates the ingredient lines of every recipe in the
// user's cart. Lines that share an ingredient name and unit are summed.
// Items are ordered by name, then unit. An empty cart yields an empty list.
func (s *Store) GetShoppingList(ctx context.Context, userID string) (domain.ShoppingList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, SUM(ri.amount)
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = ?
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name ASC, i.measurement_unit ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := domain.ShoppingList{}
	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
