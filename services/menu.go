package services

import (
	"strconv"
	"strings"

	"sparkmeals/models"

	"github.com/shopspring/decimal"
)

var meals = []models.Meal{
	{ID: 1, Name: "Spaghetti Bolognese", Price: decimal.RequireFromString("12.99"), Image: "/spaghetti.png", Category: models.CategoryLunch},
	{ID: 2, Name: "Meatball Burger", Price: decimal.RequireFromString("10.99"), Image: "/meatball.png", Category: models.CategoryLunch},
	{ID: 3, Name: "Chicken Fried Steak", Price: decimal.RequireFromString("14.99"), Image: "/chickenfried.png", Category: models.CategoryDinner},
	{ID: 4, Name: "Pasta Primavera", Price: decimal.RequireFromString("11.99"), Image: "/pasta.png", Category: models.CategoryLunch},
	{ID: 5, Name: "Garden Salad", Price: decimal.RequireFromString("8.99"), Image: "/salad.png", Category: models.CategoryBreakfast},
	{ID: 6, Name: "Grilled Steak", Price: decimal.RequireFromString("16.99"), Image: "/steak.png", Category: models.CategoryDinner},
}

// ListMeals returns a copy of the catalog ordered by id.
func ListMeals() []models.Meal {
	out := make([]models.Meal, len(meals))
	copy(out, meals)
	return out
}

func GetMealByID(id int) (*models.Meal, bool) {
	for _, m := range meals {
		if m.ID == id {
			m := m
			return &m, true
		}
	}
	return nil, false
}

// GetMealByIDString treats a non-numeric id as not found.
func GetMealByIDString(idStr string) (*models.Meal, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		return nil, false
	}
	return GetMealByID(id)
}

// UniqueCategories returns "All" followed by the catalog categories in first-seen order.
func UniqueCategories() []string {
	seen := make(map[string]bool)
	cats := []string{models.CategoryAll}
	for _, m := range meals {
		if !seen[m.Category] {
			seen[m.Category] = true
			cats = append(cats, m.Category)
		}
	}
	return cats
}

// FilterMeals matches name by case-insensitive substring and category exactly.
// An empty category behaves like "All".
func FilterMeals(query, category string) []models.Meal {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Meal{}
	for _, m := range meals {
		if q != "" && !strings.Contains(strings.ToLower(m.Name), q) {
			continue
		}
		if category != "" && category != models.CategoryAll && m.Category != category {
			continue
		}
		out = append(out, m)
	}
	return out
}
