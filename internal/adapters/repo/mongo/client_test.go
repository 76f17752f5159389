package mongo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/phenrril/fightshop/internal/domain"
)

func TestUUIDCodecRoundTrip(t *testing.T) {
	reg := registry()
	uid := uuid.New()
	in := domain.Order{ID: uuid.New(), Number: "ORD-1", UserID: &uid, Items: []domain.OrderItem{{ID: uuid.New(), ProductID: "1", Quantity: 2}}}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	idVal := bson.Raw(raw).Lookup("_id")
	subtype, data := idVal.Binary()
	assert.Equal(t, bson.TypeBinaryUUID, subtype)
	assert.Equal(t, in.ID[:], data)

	var out domain.Order
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.Equal(t, in.ID, out.ID)
	require.NotNil(t, out.UserID)
	assert.Equal(t, uid, *out.UserID)
	assert.Equal(t, in.Items[0].ID, out.Items[0].ID)
}
