// Copyright 2019 Adverax. All Rights Reserved.
// This file is part of project
//
//      http://github.com/adverax/echo
//
// Licensed under the MIT (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      https://github.com/adverax/echo/blob/master/LICENSE
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sql

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/adverax/bandreport/generic"
)

// NullInt64 represents an int64 that may be null. It implements the
// Scanner interface so it can be used as a scan destination; adapters.go
// uses it to read the result of MySQL's RELEASE_LOCK, which can be NULL.
type NullInt64 struct {
	Int64 int64
	Valid bool // Valid is true if Int64 is not NULL
}

func (n *NullInt64) Scan(value interface{}) error {
	if value == nil {
		n.Int64, n.Valid = 0, false
		return nil
	}
	n.Valid = true
	return generic.ConvertAssign(&n.Int64, value)
}

func (n NullInt64) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Int64, nil
}

func (n NullInt64) Internal() driver.Value {
	if !n.Valid {
		return nil
	}
	return n.Int64
}

func (n NullInt64) External() interface{} {
	if !n.Valid {
		return int64(0)
	}
	return n.Int64
}

func (n *NullInt64) MarshalJSON() ([]byte, error) {
	var res []byte
	var err error
	if n.Valid {
		res, err = json.Marshal(n.Int64)
	} else {
		res, err = json.Marshal(nil)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (n *NullInt64) UnmarshalJSON(data []byte) error {
	// Unmarshalling into a pointer will let us detect null
	var x *int64
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	if x != nil {
		n.Valid = true
		n.Int64 = *x
	} else {
		n.Valid = false
	}
	return nil
}
