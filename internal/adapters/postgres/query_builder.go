package postgres

import (
	"fmt"
	"strings"

	"catalog-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddFloatFilter — включительные границы >= / <=; обе могут быть заданы одновременно
func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntFilter(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// build создает финальную WHERE-часть запроса.
// Пустой список условий — пустая строка, то есть match-all.
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFilters — главный метод: разбирает разреженный фильтр и строит запрос.
// Все пользовательские значения уходят в args и биндятся как параметры,
// в текст запроса они не подставляются никогда.
func applyFilters(filters domain.SearchFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	// Явный allow-list id. Пустой список — "не фильтровать", а не "ничего".
	if len(filters.IDs) > 0 {
		qb.addCondition("%s = ANY($%d)", "l.id", filters.IDs)
	}

	qb.AddFloatFilter("l.price_per_month", filters.PriceMin, filters.PriceMax)

	// Минимумы по спальням/ванным. Сентинел "any" отсеян на этапе парсинга.
	if filters.BedsMin != nil {
		qb.addCondition("%s >= $%d", "l.beds", *filters.BedsMin)
	}
	if filters.BathsMin != nil {
		qb.addCondition("%s >= $%d", "l.baths", *filters.BathsMin)
	}

	qb.AddIntFilter("l.square_feet", filters.SquareFeetMin, filters.SquareFeetMax)

	if filters.PropertyType != "" {
		qb.addCondition("%s = $%d", "l.property_type", filters.PropertyType)
	}

	// "содержит все из" по массивному полю
	if len(filters.Amenities) > 0 {
		qb.addCondition("%s @> $%d", "l.amenities", filters.Amenities)
	}

	// Существует lease, начинающийся не позже порога.
	if filters.AvailableFrom != nil {
		condition := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM leases ls WHERE ls.listing_id = l.id AND ls.start_date <= $%d)",
			qb.argId,
		)
		qb.conditions = append(qb.conditions, condition)
		qb.args = append(qb.args, *filters.AvailableFrom)
		qb.argId++
	}

	// Пространственный предикат — только когда заданы обе координаты.
	if filters.CenterLatitude != nil && filters.CenterLongitude != nil {
		condition := fmt.Sprintf(
			"ST_DWithin(loc.coordinates, ST_SetSRID(ST_MakePoint($%d, $%d), 4326), $%d)",
			qb.argId, qb.argId+1, qb.argId+2,
		)
		qb.conditions = append(qb.conditions, condition)
		qb.args = append(qb.args, *filters.CenterLongitude, *filters.CenterLatitude, radiusToDegrees(filters.RadiusKm))
		qb.argId += 3
	}

	return qb.build()
}
