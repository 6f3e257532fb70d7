package sunat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jhoicas/facturacion-api/pkg/config"
)

// RucProfile datos públicos de un RUC para prellenar el formulario de registro.
type RucProfile struct {
	RUC             string `json:"ruc"`
	RazonSocial     string `json:"razon_social"`
	NombreComercial string `json:"nombre_comercial"`
	Direccion       string `json:"direccion"`
	Estado          string `json:"estado"`
	Condicion       string `json:"condicion"`
}

// Client consulta el padrón SUNAT vía la API de decolecta. Endpoint auxiliar
// de prellenado: no participa del núcleo de registro.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient construye el cliente con el timeout de la configuración (10 s por defecto).
func NewClient(cfg config.SUNATConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
	}
}

// respuesta de decolecta: los datos pueden venir envueltos en "data" o planos.
type lookupResponse struct {
	Data *RucProfile `json:"data"`
	RucProfile
}

// Lookup consulta un RUC. Devuelve (nil, nil) si el RUC no existe en el padrón.
func (c *Client) Lookup(ctx context.Context, ruc string) (*RucProfile, error) {
	u := c.baseURL + "?numero=" + url.QueryEscape(ruc)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("consulta RUC: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consulta RUC %s: %w", ruc, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consulta RUC %s: status %d", ruc, resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("consulta RUC %s: decodificar respuesta: %w", ruc, err)
	}
	profile := body.RucProfile
	if body.Data != nil {
		profile = *body.Data
	}
	if profile.RUC == "" {
		profile.RUC = ruc
	}
	return &profile, nil
}
