package databricks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/productgoat/backend/internal/domain"
	"go.uber.org/zap"
)

// productLookupStatement selects the product row by barcode. The barcode is
// bound as a named parameter; it is attacker-controllable input from a URL
// query and must never be interpolated into the statement text.
const productLookupStatement = `SELECT * FROM product WHERE code = :code`

// Client executes parameterized statements against the Databricks SQL
// statement execution endpoint. It is the primary product source.
type Client struct {
	httpClient  *http.Client
	host        string
	token       string
	warehouseID string
	log         *zap.SugaredLogger
}

// NewClient creates a new statement execution client.
func NewClient(host, token, warehouseID string, log *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		host:        host,
		token:       token,
		warehouseID: warehouseID,
		log:         log,
	}
}

type statementRequest struct {
	Statement   string               `json:"statement"`
	WarehouseID string               `json:"warehouse_id"`
	Parameters  []statementParameter `json:"parameters,omitempty"`
}

type statementParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

type statementResponse struct {
	Result    *statementResult `json:"result"`
	ErrorCode string           `json:"error_code"`
	Message   string           `json:"message"`
}

type statementResult struct {
	DataArray [][]any `json:"data_array"`
}

// Lookup queries the warehouse for the row matching the barcode and maps it
// into the normalized product record. Query failures of any kind come back as
// ErrPrimaryQuery; a well-formed empty result set is ErrProductNotFound.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.Product, error) {
	payload, err := json.Marshal(statementRequest{
		Statement:   productLookupStatement,
		WarehouseID: c.warehouseID,
		Parameters: []statementParameter{
			{Name: "code", Value: barcode, Type: "STRING"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", domain.ErrPrimaryQuery, err)
	}

	endpoint := fmt.Sprintf("%s/api/2.0/sql/statements", c.host)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrPrimaryQuery, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPrimaryQuery, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrPrimaryQuery, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warnw("warehouse statement rejected", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrPrimaryQuery, resp.StatusCode)
	}

	var stmtResp statementResponse
	if err := json.Unmarshal(body, &stmtResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrPrimaryQuery, err)
	}
	if stmtResp.ErrorCode != "" {
		c.log.Warnw("warehouse statement error", "code", stmtResp.ErrorCode, "message", stmtResp.Message)
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrPrimaryQuery, stmtResp.ErrorCode, stmtResp.Message)
	}
	if stmtResp.Result == nil || len(stmtResp.Result.DataArray) == 0 {
		return nil, domain.ErrProductNotFound
	}

	product, err := mapRow(stmtResp.Result.DataArray[0])
	if err != nil {
		return nil, err
	}
	c.log.Debugw("resolved product from warehouse", "barcode", barcode, "name", product.ProductName)
	return product, nil
}
