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

package serializer

import (
	"context"
	"io"
)

// Serializer is an interface for writing a resource in some output format.
//
// The context parameter is used for cancellation and timeouts, relevant for
// implementations that perform network or other slow I/O.
type Serializer interface {
	Serialize(ctx context.Context, resource any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// TableRenderer lets a resource replace the generic flattened table with
// its own tabular form. Writer consults it for the table format only.
type TableRenderer interface {
	RenderTable(w io.Writer) error
}
