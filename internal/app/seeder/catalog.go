package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

// catalogFile is the YAML layout of a category catalog:
//
//	categories:
//	  - name: Cars
//	    slug: cars
//	    icon: "🚗"
//	    customFields:
//	      - fieldName: year
//	        fieldType: number
//	        required: true
type catalogFile struct {
	Categories []CatalogEntry `yaml:"categories"`
}

// CatalogEntry is one category of a catalog. Slug defaults to the slugified
// name.
type CatalogEntry struct {
	Name         string       `yaml:"name"`
	Slug         string       `yaml:"slug"`
	Icon         string       `yaml:"icon"`
	Description  string       `yaml:"description"`
	CustomFields []FieldEntry `yaml:"customFields"`
}

// FieldEntry is one field definition of a catalog entry.
type FieldEntry struct {
	FieldName   string   `yaml:"fieldName"`
	FieldType   string   `yaml:"fieldType"`
	Options     []string `yaml:"options"`
	Required    bool     `yaml:"required"`
	Placeholder string   `yaml:"placeholder"`
}

// LoadCatalog reads a YAML catalog file.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog: file %s not found", path)
	}

	var file catalogFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("catalog: %s has no categories", path)
	}
	return file.Categories, nil
}

// toCategory converts e into an active category with normalized fields.
func (e CatalogEntry) toCategory() domain.Category {
	fields := make([]domain.FieldDefinition, len(e.CustomFields))
	for i, f := range e.CustomFields {
		fields[i] = domain.FieldDefinition{
			Name:        f.FieldName,
			Type:        domain.FieldType(f.FieldType),
			Options:     f.Options,
			Required:    f.Required,
			Placeholder: f.Placeholder,
		}
	}

	name := domain.NormalizeText(e.Name)
	slug := e.Slug
	if slug == "" {
		slug = domain.Slugify(name)
	}

	return domain.Category{
		Name:        name,
		Slug:        slug,
		Icon:        e.Icon,
		Description: e.Description,
		Fields:      domain.NormalizeFieldDefinitions(fields),
		IsActive:    true,
	}
}

// DefaultCatalog returns the built-in marketplace categories.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Name: "Cars", Slug: "cars", Icon: "🚗",
			Description: "Buy and sell new and used cars",
			CustomFields: []FieldEntry{
				{FieldName: "make", FieldType: "dropdown", Options: []string{"Toyota", "Honda", "BMW", "Mercedes", "Nissan", "Ford", "Chevrolet", "Hyundai", "Kia", "Volkswagen"}, Required: true, Placeholder: "Select make"},
				{FieldName: "model", FieldType: "text", Required: true, Placeholder: "Enter model"},
				{FieldName: "year", FieldType: "number", Required: true, Placeholder: "Enter year"},
				{FieldName: "mileage", FieldType: "number", Required: true, Placeholder: "Mileage in km"},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Used"}, Required: true},
				{FieldName: "fuelType", FieldType: "dropdown", Options: []string{"Petrol", "Diesel", "Electric", "Hybrid"}, Required: true},
				{FieldName: "transmission", FieldType: "radio", Options: []string{"Automatic", "Manual"}, Required: true},
				{FieldName: "bodyType", FieldType: "dropdown", Options: []string{"Sedan", "SUV", "Hatchback", "Coupe", "Convertible", "Pickup"}},
			},
		},
		{
			Name: "Real Estate", Slug: "real-estate", Icon: "🏠",
			Description: "Find properties for sale or rent",
			CustomFields: []FieldEntry{
				{FieldName: "propertyType", FieldType: "dropdown", Options: []string{"Apartment", "Villa", "Townhouse", "Studio", "Penthouse", "Office", "Shop"}, Required: true, Placeholder: "Select property type"},
				{FieldName: "listingType", FieldType: "radio", Options: []string{"For Sale", "For Rent"}, Required: true},
				{FieldName: "bedrooms", FieldType: "number", Required: true, Placeholder: "Number of bedrooms"},
				{FieldName: "bathrooms", FieldType: "number", Required: true, Placeholder: "Number of bathrooms"},
				{FieldName: "area", FieldType: "number", Required: true, Placeholder: "Area in sq ft"},
				{FieldName: "furnished", FieldType: "radio", Options: []string{"Furnished", "Unfurnished", "Semi-Furnished"}},
				{FieldName: "parking", FieldType: "number", Placeholder: "Parking spaces"},
				{FieldName: "amenities", FieldType: "checkbox", Options: []string{"Pool", "Gym", "Security", "Garden", "Balcony"}},
			},
		},
		{
			Name: "Electronics", Slug: "electronics", Icon: "💻",
			Description: "Buy and sell electronics and gadgets",
			CustomFields: []FieldEntry{
				{FieldName: "brand", FieldType: "text", Required: true, Placeholder: "Enter brand"},
				{FieldName: "model", FieldType: "text", Placeholder: "Enter model"},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Used", "Refurbished"}, Required: true},
				{FieldName: "warranty", FieldType: "checkbox", Options: []string{"Under Warranty"}},
			},
		},
		{
			Name: "Furniture", Slug: "furniture", Icon: "🛋️",
			Description: "Buy and sell furniture items",
			CustomFields: []FieldEntry{
				{FieldName: "furnitureType", FieldType: "dropdown", Options: []string{"Sofa", "Bed", "Table", "Chair", "Cabinet", "Desk", "Wardrobe"}, Required: true},
				{FieldName: "material", FieldType: "dropdown", Options: []string{"Wood", "Metal", "Plastic", "Glass", "Fabric"}},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Used", "Like New"}, Required: true},
			},
		},
		{
			Name: "Jobs", Slug: "jobs", Icon: "💼",
			Description: "Find job opportunities",
			CustomFields: []FieldEntry{
				{FieldName: "jobTitle", FieldType: "text", Required: true, Placeholder: "Job title"},
				{FieldName: "jobType", FieldType: "radio", Options: []string{"Full-time", "Part-time", "Contract", "Freelance"}, Required: true},
				{FieldName: "experience", FieldType: "dropdown", Options: []string{"Entry Level", "1-2 years", "3-5 years", "5+ years"}, Required: true},
				{FieldName: "salary", FieldType: "number", Placeholder: "Monthly salary"},
				{FieldName: "benefits", FieldType: "checkbox", Options: []string{"Health Insurance", "Visa", "Transportation", "Housing"}},
			},
		},
		{
			Name: "Mobile Phones", Slug: "mobile-phones", Icon: "📱",
			Description: "Buy and sell mobile phones",
			CustomFields: []FieldEntry{
				{FieldName: "brand", FieldType: "dropdown", Options: []string{"Apple", "Samsung", "Huawei", "Xiaomi", "OnePlus", "Google", "Oppo"}, Required: true},
				{FieldName: "model", FieldType: "text", Required: true, Placeholder: "Enter model"},
				{FieldName: "storage", FieldType: "dropdown", Options: []string{"64GB", "128GB", "256GB", "512GB", "1TB"}},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Used", "Refurbished"}, Required: true},
				{FieldName: "warranty", FieldType: "checkbox", Options: []string{"Under Warranty"}},
			},
		},
		{
			Name: "Fashion & Clothing", Slug: "fashion-clothing", Icon: "👗",
			Description: "Shop for clothes, shoes, and accessories",
			CustomFields: []FieldEntry{
				{FieldName: "category", FieldType: "dropdown", Options: []string{"Men", "Women", "Kids", "Unisex"}, Required: true},
				{FieldName: "itemType", FieldType: "dropdown", Options: []string{"Shirt", "Pants", "Dress", "Shoes", "Bag", "Watch", "Accessories"}, Required: true},
				{FieldName: "size", FieldType: "dropdown", Options: []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}},
				{FieldName: "brand", FieldType: "text", Placeholder: "Brand name"},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Like New", "Used"}, Required: true},
			},
		},
		{
			Name: "Sports & Fitness", Slug: "sports-fitness", Icon: "⚽",
			Description: "Sports equipment, gym gear, and fitness items",
			CustomFields: []FieldEntry{
				{FieldName: "category", FieldType: "dropdown", Options: []string{"Gym Equipment", "Sports Gear", "Bicycles", "Outdoor Sports", "Fitness Accessories"}, Required: true},
				{FieldName: "brand", FieldType: "text", Placeholder: "Brand name"},
				{FieldName: "condition", FieldType: "radio", Options: []string{"New", "Used", "Like New"}, Required: true},
				{FieldName: "suitableFor", FieldType: "dropdown", Options: []string{"Adults", "Kids", "All Ages"}},
			},
		},
	}
}
