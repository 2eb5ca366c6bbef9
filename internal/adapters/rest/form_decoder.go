package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"
)

// Явный шаг декодирования "провод -> домен": значения multipart-формы
// (числа строками, "true"/"false", comma-joined списки) превращаются в
// типизированный объект до того, как их увидит бизнес-логика.
//
// Правила приведения при создании — тотальные, fallback на поле:
//   pricePerMonth, securityDeposit, applicationFee, squareFeet -> 0
//   beds, baths                                               -> 1
//   amenities, highlights                                      -> пустой список
//   isPetsAllowed, isParkingIncluded                           -> false
//
// При обновлении нераспарсившееся значение дает nil-указатель: остается
// сохраненное значение, а не дефолт.

const maxMultipartMemory = 32 << 20 // 32 MiB

func floatOrDefault(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

func intOrDefault(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func boolOrDefault(v string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// splitList — comma-joined строка в список; пусто — пустой список.
func splitList(v string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readMediaFiles(headers []*multipart.FileHeader) ([]domain.MediaFile, error) {
	files := make([]domain.MediaFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", h.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %q: %w", h.Filename, err)
		}
		files = append(files, domain.MediaFile{
			Data:     data,
			Name:     h.Filename,
			MimeType: h.Header.Get("Content-Type"),
		})
	}
	return files, nil
}

// decodeListingDraft разбирает multipart-форму создания объявления.
func decodeListingDraft(r *http.Request) (domain.ListingDraft, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return domain.ListingDraft{}, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	form := r.MultipartForm.Value

	get := func(key string) string {
		if vs, ok := form[key]; ok && len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	draft := domain.ListingDraft{
		Name:        get("name"),
		Description: get("description"),
		Address: domain.AddressInput{
			Street:     strings.TrimSpace(get("address")),
			City:       strings.TrimSpace(get("city")),
			Region:     strings.TrimSpace(get("state")),
			Country:    strings.TrimSpace(get("country")),
			PostalCode: strings.TrimSpace(get("postalCode")),
		},

		PricePerMonth:     floatOrDefault(get("pricePerMonth"), 0),
		SecurityDeposit:   floatOrDefault(get("securityDeposit"), 0),
		ApplicationFee:    floatOrDefault(get("applicationFee"), 0),
		Beds:              intOrDefault(get("beds"), 1),
		Baths:             floatOrDefault(get("baths"), 1),
		SquareFeet:        intOrDefault(get("squareFeet"), 0),
		PropertyType:      get("propertyType"),
		IsPetsAllowed:     boolOrDefault(get("isPetsAllowed"), false),
		IsParkingIncluded: boolOrDefault(get("isParkingIncluded"), false),
		Amenities:         splitList(get("amenities")),
		Highlights:        splitList(get("highlights")),

		ManagerID: strings.TrimSpace(get("managerCognitoId")),
	}

	photos, err := readMediaFiles(r.MultipartForm.File["photos"])
	if err != nil {
		return domain.ListingDraft{}, err
	}
	draft.Photos = photos

	return draft, nil
}

// --- Обновление: присутствующее и распарсившееся значение дает указатель,
// все остальное — nil (оставить сохраненное). ---

func patchString(form url.Values, key string) *string {
	if vs, ok := form[key]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

func patchFloat(form url.Values, key string) *float64 {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(vs[0]), 64)
	if err != nil {
		return nil
	}
	return &f
}

func patchInt(form url.Values, key string) *int {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(vs[0]))
	if err != nil {
		return nil
	}
	return &n
}

func patchBool(form url.Values, key string) *bool {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(vs[0]))
	if err != nil {
		return nil
	}
	return &b
}

func patchList(form url.Values, key string) *[]string {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	list := splitList(vs[0])
	return &list
}

// decodeListingPatch разбирает multipart-форму обновления объявления.
func decodeListingPatch(r *http.Request) (domain.ListingPatch, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return domain.ListingPatch{}, fmt.Errorf("failed to parse multipart form: %w", err)
	}
	form := url.Values(r.MultipartForm.Value)

	patch := domain.ListingPatch{
		Name:        patchString(form, "name"),
		Description: patchString(form, "description"),
		Address: domain.AddressPatch{
			Street:     patchString(form, "address"),
			City:       patchString(form, "city"),
			Region:     patchString(form, "state"),
			Country:    patchString(form, "country"),
			PostalCode: patchString(form, "postalCode"),
		},

		PricePerMonth:     patchFloat(form, "pricePerMonth"),
		SecurityDeposit:   patchFloat(form, "securityDeposit"),
		ApplicationFee:    patchFloat(form, "applicationFee"),
		Beds:              patchInt(form, "beds"),
		Baths:             patchFloat(form, "baths"),
		SquareFeet:        patchInt(form, "squareFeet"),
		PropertyType:      patchString(form, "propertyType"),
		IsPetsAllowed:     patchBool(form, "isPetsAllowed"),
		IsParkingIncluded: patchBool(form, "isParkingIncluded"),
		Amenities:         patchList(form, "amenities"),
		Highlights:        patchList(form, "highlights"),

		ReplacePhotos: boolOrDefault(form.Get("replacePhotos"), false),
	}

	photos, err := readMediaFiles(r.MultipartForm.File["photos"])
	if err != nil {
		return domain.ListingPatch{}, err
	}
	patch.Photos = photos

	return patch, nil
}
