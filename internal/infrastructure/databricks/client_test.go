package databricks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/productgoat/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// sampleRow builds a well-formed 20-column product row.
func sampleRow() []any {
	return []any{
		"prod-1",                    // productID
		"en:milk",                   // allergens
		"en:milk",                   // allergens from ingredients
		"en:milk,en:nuts",           // allergens tags
		"Ferrero",                   // brand
		"3017620422003",             // code
		"sweets",                    // food group
		nil,                         // unused
		"https://img/front.jpg",     // image front
		"https://img/ing.jpg",       // image ingredients
		"https://img/nutr.jpg",      // image nutrition
		"https://img/pack.jpg",      // image packaging
		nil,                         // unused
		`[{"id":"en:sugar","text":"sugar"}]`,            // ingredients
		`["en:vegetarian"]`,                             // ingredients analysis tags
		`{"fat":"high","sugars":"high"}`,                // nutrient levels
		`{"carbohydrates":57.5,"fat":30.9,"proteins":6.3,"energy-kcal":539}`, // nutriments
		"e",             // nutriscore grade
		"26",            // nutriscore score
		"Nutella",       // product name
	}
}

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/2.0/sql/statements", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req statementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// The barcode must arrive as a bound parameter, never inside the
		// statement text.
		assert.Contains(t, req.Statement, ":code")
		assert.NotContains(t, req.Statement, "3017620422003")
		require.Len(t, req.Parameters, 1)
		assert.Equal(t, "code", req.Parameters[0].Name)
		assert.Equal(t, "3017620422003", req.Parameters[0].Value)
		assert.Equal(t, "wh-1", req.WarehouseID)

		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"data_array": []any{sampleRow()},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	product, err := client.Lookup(context.Background(), "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, "3017620422003", product.Code)
	assert.Equal(t, "Nutella", product.ProductName)
	assert.Equal(t, "Ferrero", product.Brand)
	assert.Equal(t, []string{"en:milk", "en:nuts"}, product.AllergensTags)
	assert.Equal(t, 57.5, float64(product.Nutriments["carbohydrates"]))
	assert.Equal(t, 539.0, float64(product.Nutriments["energy-kcal"]))
	assert.Equal(t, "e", product.NutriscoreGrade)
	require.NotNil(t, product.NutriscoreScore)
	assert.Equal(t, 26.0, *product.NutriscoreScore)
}

func TestLookup_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"data_array": []any{}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	product, err := client.Lookup(context.Background(), "0000000000000")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLookup_ErrorCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error_code": "RESOURCE_DOES_NOT_EXIST",
			"message":    "warehouse not found",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	product, err := client.Lookup(context.Background(), "3017620422003")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrPrimaryQuery)
	assert.Contains(t, err.Error(), "RESOURCE_DOES_NOT_EXIST")
}

func TestLookup_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", "wh-1", testLogger())

	_, err := client.Lookup(context.Background(), "3017620422003")
	assert.ErrorIs(t, err, domain.ErrPrimaryQuery)
}

func TestLookup_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately unreachable

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	_, err := client.Lookup(context.Background(), "3017620422003")
	assert.ErrorIs(t, err, domain.ErrPrimaryQuery)
}

func TestLookup_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	_, err := client.Lookup(context.Background(), "3017620422003")
	assert.ErrorIs(t, err, domain.ErrPrimaryQuery)
	assert.False(t, strings.Contains(err.Error(), "not found"))
}

func TestLookup_DecodeFailureIsPrimaryDecode(t *testing.T) {
	row := sampleRow()
	row[16] = `{"carbohydrates": broken`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{"data_array": []any{row}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "wh-1", testLogger())

	product, err := client.Lookup(context.Background(), "3017620422003")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrPrimaryDecode)
}
