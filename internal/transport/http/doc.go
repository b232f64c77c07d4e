// Package http exposes the development pipeline over a chi-based JSON API:
// POST /api/triangle/develop for caller-supplied observations, GET
// /api/triangle/synthetic for the illustrative dataset, plus health and
// Prometheus metrics endpoints.
package http
