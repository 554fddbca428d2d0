package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"propertychat/internal/model"
	"propertychat/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPayload = `{
  "house": {
    "id_listing": "Xy7kq3",
    "address": "1820 Commercial Drive",
    "municipality_name": "Vancouver",
    "community_name": "Grandview",
    "province": "BC",
    "postal_code": "V5N 4A5",
    "house_type_name": "Condo Apt",
    "bedroom": 2,
    "washroom": 1.5,
    "price_int": 749000,
    "description": "Top floor suite with a balcony.",
    "features": ["Balcony", "In-suite Laundry"],
    "days_on_market": 4,
    "list_status": {"text": "For Sale"},
    "map": {"lat": 49.27, "lon": -123.07}
  },
  "assessment": {"properties": {"city": "Vancouver", "neighborhood": "Commercial Drive"}},
  "picture": {"photo_list": ["https://example.com/1.jpg"]},
  "key_facts_v2": {"build_year": {"value": "2012"}}
}`

func TestTransform(t *testing.T) {
	payload, err := Decode([]byte(detailPayload))
	require.NoError(t, err)

	p, err := Transform(payload)
	require.NoError(t, err)

	require.NotNil(t, p.ListingID)
	assert.Equal(t, "Xy7kq3", *p.ListingID)
	assert.Equal(t, "1820 Commercial Drive", p.Address)
	assert.Equal(t, "Vancouver", p.City)
	assert.Equal(t, "Commercial Drive", p.Neighborhood)
	assert.Equal(t, "condo", p.PropertyType)
	assert.Equal(t, "for_sale", p.Status)
	assert.Equal(t, int64(749000), p.Price)
	assert.Equal(t, 2, p.Bedrooms)
	assert.InDelta(t, 1.5, p.Bathrooms, 1e-9)
	assert.Equal(t, model.JSONArray{"Balcony", "In-suite Laundry"}, p.Features)
	assert.Equal(t, model.JSONArray{"https://example.com/1.jpg"}, p.Images)
	require.NotNil(t, p.YearBuilt)
	assert.Equal(t, 2012, *p.YearBuilt)
}

func TestTransform_Fallbacks(t *testing.T) {
	payload, err := Decode([]byte(`{"id_listing": "abc", "address": "1 Main St", "house_type_name": "Detached"}`))
	require.NoError(t, err)

	p, err := Transform(payload)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", p.City)
	assert.Equal(t, "Unknown", p.Neighborhood)
	assert.Equal(t, "house", p.PropertyType)
	assert.NotNil(t, p.Features)
	assert.NotNil(t, p.Images)
	assert.Nil(t, p.YearBuilt)

	_, err = Transform(&Payload{House: &House{Address: "no id"}})
	assert.Error(t, err)
}

func TestNormalizeType(t *testing.T) {
	tests := map[string]string{
		"Townhouse":      "townhouse",
		"Row/Townhouse":  "townhouse",
		"Condo Apt":      "condo",
		"Apartment":      "condo",
		"Detached":       "house",
		"Semi-Detached":  "house",
		"":               "other",
		"Vacant Land":    "vacant_land",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeType(in), in)
	}
}

type countingEmbedder struct {
	calls int
	got   []model.Property
}

func (e *countingEmbedder) EmbedProperties(ctx context.Context, properties []model.Property) (int, []string) {
	e.calls++
	e.got = properties
	return len(properties), nil
}

func TestImporter_Import(t *testing.T) {
	repo := repository.NewMemoryRepository()
	embedder := &countingEmbedder{}
	im := NewImporter(repo, embedder, 4)

	names := []string{}
	payloads := [][]byte{}
	for i := 0; i < 10; i++ {
		names = append(names, fmt.Sprintf("listing-%d.json", i))
		payloads = append(payloads, []byte(fmt.Sprintf(
			`{"house": {"id_listing": "L%d", "address": "%d Main St", "city": "Vancouver", "price_int": %d, "house_type_name": "Detached"}}`,
			i, i+1, 500000+i)))
	}
	names = append(names, "broken.json", "no-address.json", "bad-coords.json")
	payloads = append(payloads,
		[]byte(`{not json`),
		[]byte(`{"house": {"id_listing": "L99", "city": "Vancouver"}}`),
		[]byte(`{"house": {"id_listing": "L98", "address": "2 Main St", "city": "Vancouver", "map": {"lat": 200}}}`),
	)

	result := im.Import(context.Background(), names, payloads)

	assert.Equal(t, 10, result.Imported)
	assert.Equal(t, 3, result.Failed)
	assert.Len(t, result.Errors, 3)
	assert.Equal(t, 10, result.Embedded)
	assert.Equal(t, 1, embedder.calls)
	assert.Len(t, embedder.got, 10)

	all, err := repo.GetAllProperties(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestImporter_IdempotentOnListingID(t *testing.T) {
	repo := repository.NewMemoryRepository()
	im := NewImporter(repo, nil, 2)

	first := []byte(`{"house": {"id_listing": "L1", "address": "1 Main St", "city": "Vancouver", "price_int": 100}}`)
	second := []byte(`{"house": {"id_listing": "L1", "address": "1 Main St", "city": "Vancouver", "price_int": 90}}`)

	im.Import(context.Background(), []string{"a.json"}, [][]byte{first})
	result := im.Import(context.Background(), []string{"b.json"}, [][]byte{second})
	assert.Equal(t, 1, result.Imported)

	all, err := repo.GetAllProperties(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(90), all[0].Price)
}

func TestImporter_ImportDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.json"), []byte(detailPayload), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	repo := repository.NewMemoryRepository()
	result, err := NewImporter(repo, nil, 1).ImportDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Zero(t, result.Failed)

	found, err := repo.SearchProperties(context.Background(), "condo", "Commercial Drive", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
