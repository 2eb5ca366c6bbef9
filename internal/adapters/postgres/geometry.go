package postgres

import (
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"
)

// Конвертация между текстовым представлением точки PostGIS и парой
// {latitude, longitude}. Порядок в WKT географический: долгота, потом широта.

const pointSRID = "SRID=4326;"

// Приближение: 1 градус широты ~ 111 км. Достаточно для поиска масштаба
// города/страны, непригодно для полярных широт и очень больших радиусов.
const kmPerDegree = 111.0

// ParsePointText декодирует "POINT(lng lat)" или "SRID=4326;POINT(lng lat)"
// в координатную пару. Пустой, искажённый или неточечный текст —
// *domain.GeometryParseError.
func ParsePointText(text string) (domain.Coordinates, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, pointSRID)

	if !strings.HasPrefix(s, "POINT(") || !strings.HasSuffix(s, ")") {
		return domain.Coordinates{}, &domain.GeometryParseError{Text: text}
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(s, "POINT("), ")")
	parts := strings.Fields(inner)
	if len(parts) != 2 {
		return domain.Coordinates{}, &domain.GeometryParseError{Text: text}
	}

	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Coordinates{}, &domain.GeometryParseError{Text: text}
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Coordinates{}, &domain.GeometryParseError{Text: text}
	}

	return domain.Coordinates{Latitude: lat, Longitude: lng}, nil
}

// PointLiteral — обратное направление: значение для пространственной записи.
// Аргументы в географическом порядке — долгота, широта; не переставлять.
func PointLiteral(lng, lat float64) string {
	var b strings.Builder
	b.WriteString(pointSRID)
	b.WriteString("POINT(")
	b.WriteString(strconv.FormatFloat(lng, 'f', -1, 64))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(lat, 'f', -1, 64))
	b.WriteByte(')')
	return b.String()
}

// radiusToDegrees переводит километровый радиус в градусы для ST_DWithin
// по geometry-колонке.
func radiusToDegrees(radiusKm float64) float64 {
	return radiusKm / kmPerDegree
}
