package domain

// AddressInput — обязательные и опциональные компоненты адреса, как они
// приходят из формы. Street, City, Country валидируются оркестратором,
// Region и PostalCode могут быть пустыми.
type AddressInput struct {
	Street     string
	City       string
	Region     string
	Country    string
	PostalCode string
}

// MediaFile — одно загружаемое вложение. Байты уже вычитаны из multipart-формы.
type MediaFile struct {
	Data     []byte
	Name     string
	MimeType string
}

// ListingDraft — типизированный результат декодирования формы создания.
// Все правила приведения строк к числам/булевым/массивам уже применены
// (fallback: 0 / 1 / пустой список / false), бизнес-логика строк не видит.
type ListingDraft struct {
	Name        string
	Description string
	Address     AddressInput

	PricePerMonth     float64
	SecurityDeposit   float64
	ApplicationFee    float64
	Beds              int
	Baths             float64
	SquareFeet        int
	PropertyType      string
	IsPetsAllowed     bool
	IsParkingIncluded bool
	Amenities         []string
	Highlights        []string

	ManagerID string
	Photos    []MediaFile
}

// ListingPatch — частичное обновление. nil-указатель означает "поле не
// пришло или не распарсилось — оставить сохраненное значение" (правило
// отличается от создания, где fallback захардкожен).
type ListingPatch struct {
	Name        *string
	Description *string
	Address     AddressPatch

	PricePerMonth     *float64
	SecurityDeposit   *float64
	ApplicationFee    *float64
	Beds              *int
	Baths             *float64
	SquareFeet        *int
	PropertyType      *string
	IsPetsAllowed     *bool
	IsParkingIncluded *bool
	Amenities         *[]string
	Highlights        *[]string

	// ReplacePhotos=true — старые фото удаляются (best-effort) и заменяются,
	// иначе новые добавляются в конец списка.
	ReplacePhotos bool
	Photos        []MediaFile
}

// AddressPatch — адресные компоненты обновления.
type AddressPatch struct {
	Street     *string
	City       *string
	Region     *string
	Country    *string
	PostalCode *string
}

// Apply накладывает патч на сохраненный адрес и сообщает, изменился ли
// хотя бы один компонент (побайтовое сравнение — этого достаточно,
// чтобы решить, нужен ли повторный геокод).
func (p AddressPatch) Apply(current AddressInput) (AddressInput, bool) {
	next := current
	if p.Street != nil {
		next.Street = *p.Street
	}
	if p.City != nil {
		next.City = *p.City
	}
	if p.Region != nil {
		next.Region = *p.Region
	}
	if p.Country != nil {
		next.Country = *p.Country
	}
	if p.PostalCode != nil {
		next.PostalCode = *p.PostalCode
	}
	return next, next != current
}
