package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stujob/stujob/internal/client/models"
)

// Vacancies lists published vacancies, optionally filtered by university
// and/or major code.
func (c *Client) Vacancies(ctx context.Context, university, majorCode string) ([]*models.Vacancy, error) {
	q := url.Values{}
	if university != "" {
		q.Set("university", university)
	}
	if majorCode != "" {
		q.Set("major", majorCode)
	}

	path := "/api/vacancies"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list []*models.Vacancy
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Vacancy fetches a single vacancy by id.
func (c *Client) Vacancy(ctx context.Context, id string) (*models.Vacancy, error) {
	var v models.Vacancy
	if err := c.do(ctx, http.MethodGet, "/api/vacancies/"+url.PathEscape(id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

type uploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

// ResumeUploadURL asks the server for a presigned PUT URL for a new resume
// object and returns the URL together with the object key.
func (c *Client) ResumeUploadURL(ctx context.Context) (string, string, error) {
	var resp uploadURLResponse
	if err := c.do(ctx, http.MethodPost, "/api/resumes/upload-url", nil, &resp); err != nil {
		return "", "", err
	}
	return resp.UploadURL, resp.Key, nil
}

type downloadURLResponse struct {
	DownloadURL string `json:"download_url"`
}

// ResumeDownloadURL asks the server for a presigned GET URL for the resume
// object stored under key.
func (c *Client) ResumeDownloadURL(ctx context.Context, key string) (string, error) {
	var resp downloadURLResponse
	path := "/api/resumes/download-url?key=" + url.QueryEscape(key)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.DownloadURL, nil
}
