package validator_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/entityvalidator/pkg/entity"
	"github.com/dmitrymomot/entityvalidator/pkg/fieldspec"
	"github.com/dmitrymomot/entityvalidator/pkg/validator"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func input(spec fieldspec.FieldSpec, raw any) validator.Input {
	v := entity.Absent()
	if raw != nil {
		v = entity.ValueOf(raw)
	}
	return validator.Input{Field: spec, Value: v}
}

func kinds(errs []validator.Error) []validator.Kind {
	out := make([]validator.Kind, len(errs))
	for i, e := range errs {
		out[i] = e.Kind
	}
	return out
}
