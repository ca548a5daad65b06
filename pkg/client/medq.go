package client

import (
	"context"
	"fmt"
	"net/url"
)

// MedqClient talks to the medq HTTP API.
type MedqClient struct {
	httpClient *HttpClient
}

func NewMedqClient(baseURL string) *MedqClient {
	return &MedqClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *MedqClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *MedqClient) SearchDoctors(ctx context.Context, term string) (*Response, error) {
	path := "/api/v1/doctors"
	if term != "" {
		path += "?q=" + url.QueryEscape(term)
	}
	return c.httpClient.GET(ctx, path)
}

func (c *MedqClient) GetDoctor(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/doctors/id/"+url.PathEscape(id))
}

func (c *MedqClient) BookAppointment(ctx context.Context, body any, idempotencyKey string) (*Response, error) {
	if idempotencyKey == "" {
		return c.httpClient.POST(ctx, "/api/v1/appointments", body)
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/appointments", body, map[string]string{
		"Idempotency-Key": idempotencyKey,
	})
}

func (c *MedqClient) ListAppointments(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments")
}

func (c *MedqClient) GetAppointment(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments/id/"+url.PathEscape(id))
}

func (c *MedqClient) GetWaitTime(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments/id/"+url.PathEscape(id)+"/wait-time")
}

func (c *MedqClient) GetPrediction(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments/id/"+url.PathEscape(id)+"/prediction")
}

func (c *MedqClient) AdvanceQueue(ctx context.Context, doctorID, date string, token int) (*Response, error) {
	path := fmt.Sprintf("/api/v1/queues/%s/%s/advance", url.PathEscape(doctorID), url.PathEscape(date))
	return c.httpClient.POST(ctx, path, map[string]int{"now_serving": token})
}
