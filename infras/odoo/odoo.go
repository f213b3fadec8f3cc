package odoo

//go:generate go run go.uber.org/mock/mockgen -source=./odoo.go -destination=./mocks/odoo_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"simpledock/config"
	"simpledock/infras/otel"
	"simpledock/shared/constant"
)

const jsonrpcPath = "/jsonrpc"

// PurchaseOrder is a confirmed purchase order record from Odoo.
type PurchaseOrder struct {
	ID      int    `json:"id"`
	Partner string `json:"partner"`
}

// Odoo looks up purchase orders in an Odoo ERP instance.
type Odoo interface {
	ValidatePurchaseOrder(ctx context.Context, poNumber string) (order *PurchaseOrder, err error)
}

type rpcRequest struct {
	Jsonrpc string         `json:"jsonrpc"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
	ID      int64          `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("odoo rpc error %d: %s", e.Code, e.Message)
}

type odooImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel

	mu  sync.Mutex
	uid int
}

func New(config *config.Config, otel otel.Otel) Odoo {
	return &odooImpl{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		otel:   otel,
	}
}

func (o *odooImpl) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	payload := rpcRequest{
		Jsonrpc: "2.0",
		Method:  "call",
		Params: map[string]any{
			"service": service,
			"method":  method,
			"args":    args,
		},
		ID: time.Now().UnixNano(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal odoo rpc request: %w", err)
	}

	url := o.config.External.Odoo.URL + jsonrpcPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build odoo rpc request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call odoo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odoo returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse

	err = json.NewDecoder(resp.Body).Decode(&rpcResp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode odoo rpc response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// authenticate resolves and caches the Odoo user id for the configured credentials.
func (o *odooImpl) authenticate(ctx context.Context) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.uid != 0 {
		return o.uid, nil
	}

	cfg := o.config.External.Odoo

	result, err := o.call(ctx, "common", "authenticate", []any{
		cfg.Database, cfg.Username, cfg.Password, map[string]any{},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to authenticate with Odoo.")

		return 0, fmt.Errorf("failed to authenticate with odoo: %w", err)
	}

	var uid int
	if err := json.Unmarshal(result, &uid); err != nil || uid == 0 {
		return 0, fmt.Errorf("odoo rejected the configured credentials")
	}

	o.uid = uid

	return uid, nil
}

// ValidatePurchaseOrder looks up a confirmed purchase order by its exact name.
// A nil order with a nil error means the PO does not exist or is not confirmed.
func (o *odooImpl) ValidatePurchaseOrder(ctx context.Context, poNumber string) (order *PurchaseOrder, err error) {
	ctx, scope := o.otel.NewScope(ctx, constant.OtelOdooScopeName, constant.OtelOdooScopeName+".ValidatePurchaseOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"po_number": poNumber,
	})

	uid, err := o.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	cfg := o.config.External.Odoo

	// Only orders already confirmed in purchasing count as bookable.
	domain := []any{
		[]any{"name", "=", poNumber},
		[]any{"state", "in", []string{"purchase", "done"}},
	}

	result, err := o.call(ctx, "object", "execute_kw", []any{
		cfg.Database, uid, cfg.Password,
		"purchase.order", "search_read",
		[]any{domain},
		map[string]any{"fields": []string{"id", "partner_id"}, "limit": 1},
	})
	if err != nil {
		log.Error().Err(err).Str("po_number", poNumber).Msg("Failed to search purchase orders in Odoo.")

		return nil, fmt.Errorf("failed to search purchase orders: %w", err)
	}

	var records []struct {
		ID        int             `json:"id"`
		PartnerID json.RawMessage `json:"partner_id"`
	}

	err = json.Unmarshal(result, &records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode purchase order records: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	record := records[0]

	// partner_id comes back as [id, "Display Name"] or false when unset.
	partner := "Unknown Supplier"

	var pair []any
	if err := json.Unmarshal(record.PartnerID, &pair); err == nil && len(pair) == 2 {
		if name, ok := pair[1].(string); ok {
			partner = name
		}
	}

	return &PurchaseOrder{
		ID:      record.ID,
		Partner: partner,
	}, nil
}
