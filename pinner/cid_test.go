// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pinner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const validCID = "QmT78zSuBmuS4z925WZfrqQ1qHaJ56DQaTfyMUF7F8ff5o"

func TestValidateCIDAcceptsWellFormed(t *testing.T) {
	assert.NoError(t, ValidateCID(validCID))
}

func TestValidateCIDRejectsWrongPrefix(t *testing.T) {
	bad := "Qn" + validCID[2:]
	assert.Error(t, ValidateCID(bad))
}

func TestValidateCIDRejectsWrongLength(t *testing.T) {
	assert.Error(t, ValidateCID(validCID[:45]))
}

func TestExtractCIDFindsEmbeddedCID(t *testing.T) {
	payload := []byte(`{"url":"ipfs://` + validCID + `","name":"proposal"}`)
	got, ok := ExtractCID(payload)
	assert.True(t, ok)
	assert.Equal(t, validCID, got)
}

func TestExtractCIDReportsAbsence(t *testing.T) {
	_, ok := ExtractCID([]byte(`{"name":"no cid here"}`))
	assert.False(t, ok)
}
