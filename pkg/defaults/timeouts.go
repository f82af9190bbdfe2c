// Copyright (c) 2025, SeismicData.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Validation timeouts for running the pipeline over one container.
const (
	// ValidateTimeout is the default wall-clock budget for validating a
	// single file, introspection included. Large containers with many
	// attributes dominate this budget.
	ValidateTimeout = 5 * time.Minute

	// InspectTimeout is the budget for dumping and canonicalizing a
	// container without running the validation layers.
	InspectTimeout = 2 * time.Minute
)

// Handler timeouts for HTTP request processing.
const (
	// ValidationHandlerTimeout is the timeout for validation requests.
	// It covers spooling the upload to disk plus the full pipeline.
	ValidationHandlerTimeout = 120 * time.Second

	// VersionsHandlerTimeout is the timeout for schema version listings.
	VersionsHandlerTimeout = 5 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading the request,
	// body included. Uploads ride on this, so it is generous.
	ServerReadTimeout = 120 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 150 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Upload limits for the validation endpoint.
const (
	// MaxUploadBytes caps the candidate file size accepted by the
	// validation endpoint.
	MaxUploadBytes = 1 << 30
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)
