package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSKUMetadataRoundTrip(t *testing.T) {
	t.Run("unknown keys survive a read-modify-write cycle", func(t *testing.T) {
		raw := []byte(`{"modelName":"Classic Tee","colorName":"Red","customGrading":{"chest":2},"supplierRef":"AC-991"}`)

		var meta SKUMetadata
		require.NoError(t, json.Unmarshal(raw, &meta))
		assert.Equal(t, "Classic Tee", meta.ModelName)
		require.NotNil(t, meta.ColorName)
		assert.Equal(t, "Red", *meta.ColorName)
		assert.Contains(t, meta.Extra, "customGrading")
		assert.Contains(t, meta.Extra, "supplierRef")

		// Typed edit, then marshal: the unknown keys come back out
		blue := "Blue"
		meta.ColorName = &blue
		out, err := json.Marshal(meta)
		require.NoError(t, err)

		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Contains(t, decoded, "customGrading")
		assert.Contains(t, decoded, "supplierRef")
		assert.JSONEq(t, `"Blue"`, string(decoded["colorName"]))
	})

	t.Run("typed fields win over Extra on key collision", func(t *testing.T) {
		meta := SKUMetadata{
			ModelName: "Classic Tee",
			Extra: map[string]json.RawMessage{
				"modelName": json.RawMessage(`"Stale"`),
			},
		}
		out, err := json.Marshal(meta)
		require.NoError(t, err)

		var decoded map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.JSONEq(t, `"Classic Tee"`, string(decoded["modelName"]))
	})

	t.Run("no unknown keys leaves Extra nil", func(t *testing.T) {
		var meta SKUMetadata
		require.NoError(t, json.Unmarshal([]byte(`{"modelName":"Tee"}`), &meta))
		assert.Nil(t, meta.Extra)
	})
}

func TestIDListCodec(t *testing.T) {
	t.Run("round trip preserves order", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		encoded, err := EncodeIDList(ids)
		require.NoError(t, err)

		decoded, err := DecodeIDList(encoded)
		require.NoError(t, err)
		assert.Equal(t, ids, decoded)
	})

	t.Run("empty list round trips", func(t *testing.T) {
		encoded, err := EncodeIDList(nil)
		require.NoError(t, err)

		decoded, err := DecodeIDList(encoded)
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("malformed value is an error", func(t *testing.T) {
		_, err := DecodeIDList("not json")
		assert.Error(t, err)

		_, err = DecodeIDList(`["not-a-uuid"]`)
		assert.Error(t, err)
	})
}
