package mlxml_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shapestone/mlxml/pkg/mlxml"
	"github.com/stretchr/testify/require"
)

// shipToAddr, item and shipOrder mirror original_source/example/shiporder's
// shipto_t/item_t/shiporder_t, but item is a Go slice grown through a
// Dynamic destination instead of a hand-linked list (spec.md §9's "prefer a
// single appender onto that sequence" redesign note).
type shipToAddr struct {
	Name, Address, City, Country string
}

type shipItem struct {
	Title    string
	Note     string
	Quantity uint32
	Price    float32

	// CorrelationID demonstrates Dynamic's allocator stamping each
	// dynamically-allocated occurrence for later cross-parse tracing.
	CorrelationID string
}

type shipOrder struct {
	OrderID     string
	OrderPerson string
	ShipTo      shipToAddr
	Items       []*shipItem
}

// batchContext is the opaque `context` spec.md's Dynamic allocator and
// OnParsed callback receive; here it carries a batch id a caller might use
// to correlate allocations across a concurrent run of parses.
type batchContext struct {
	BatchID string
}

func shipOrderSchema(out *shipOrder) mlxml.ElementSchema {
	itemSchema := mlxml.ElementSchema{
		Name:       "item",
		MinOccur:   1,
		MaxOccur:   4294967295,
		ChildOrder: mlxml.Sequence,
		Destination: mlxml.Dynamic(func(occurrence uint32, ctx any) (any, bool) {
			it := &shipItem{}
			if bc, ok := ctx.(*batchContext); ok {
				it.CorrelationID = bc.BatchID + "-" + uuid.NewString()
			} else {
				it.CorrelationID = uuid.NewString()
			}
			out.Items = append(out.Items, it)
			return it, true
		}),
		Children: []mlxml.ElementSchema{
			{
				Name:     "title",
				MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(parentBase any, _ uint32) any { return &parentBase.(*shipItem).Title }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295},
			},
			{
				Name:     "note",
				MinOccur: 0, MaxOccur: 1,
				Destination: mlxml.Relative(func(parentBase any, _ uint32) any { return &parentBase.(*shipItem).Note }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295},
			},
			{
				Name:     "quantity",
				MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(parentBase any, _ uint32) any { return &parentBase.(*shipItem).Quantity }),
				Content:     mlxml.Unsigned{Bits: 32, Min: 1, Max: 4294967295},
			},
			{
				Name:     "price",
				MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(parentBase any, _ uint32) any { return &parentBase.(*shipItem).Price }),
				Content:     mlxml.Decimal{Min: -3.40282e+38, Max: 3.40282e+38},
			},
		},
	}

	shipToSchema := mlxml.ElementSchema{
		Name:     "shipto",
		MinOccur: 1, MaxOccur: 1,
		ChildOrder: mlxml.Sequence,
		Destination: mlxml.Relative(func(parentBase any, _ uint32) any { return &parentBase.(*shipOrder).ShipTo }),
		Children: []mlxml.ElementSchema{
			{Name: "name", MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipToAddr).Name }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
			{Name: "address", MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipToAddr).Address }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
			{Name: "city", MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipToAddr).City }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
			{Name: "country", MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipToAddr).Country }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
		},
	}

	return mlxml.ElementSchema{
		Name:        "shiporder",
		MinOccur:    1,
		MaxOccur:    1,
		Destination: mlxml.Static(func(uint32) any { return out }),
		ChildOrder:  mlxml.Sequence,
		Attributes: []mlxml.AttributeSchema{
			{Name: "orderid", Use: mlxml.Required,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipOrder).OrderID }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
		},
		Children: []mlxml.ElementSchema{
			{Name: "orderperson", MinOccur: 1, MaxOccur: 1,
				Destination: mlxml.Relative(func(p any, _ uint32) any { return &p.(*shipOrder).OrderPerson }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 4294967295}},
			shipToSchema,
			itemSchema,
		},
	}
}

func TestParseShiporder_DynamicUnboundedSequence(t *testing.T) {
	input := `<shiporder orderid="889923">` +
		`<orderperson>John Smith</orderperson>` +
		`<shipto><name>Ola Nordmann</name><address>Langgt 23</address><city>4000 Stavanger</city><country>Norway</country></shipto>` +
		`<item><title>Empire Burlesque</title><note>Special Edition</note><quantity>1</quantity><price>10.90</price></item>` +
		`<item><title>Hide your heart</title><quantity>1</quantity><price>9.90</price></item>` +
		`</shiporder>`

	var order shipOrder
	ctx := &batchContext{BatchID: "batch-1"}
	err := mlxml.Parse(shipOrderSchema(&order), []byte(input), nil, ctx)
	require.NoError(t, err)

	require.Equal(t, "889923", order.OrderID)
	require.Equal(t, "John Smith", order.OrderPerson)
	require.Equal(t, "Ola Nordmann", order.ShipTo.Name)
	require.Equal(t, "Norway", order.ShipTo.Country)

	require.Len(t, order.Items, 2)
	require.Equal(t, "Empire Burlesque", order.Items[0].Title)
	require.Equal(t, "Special Edition", order.Items[0].Note)
	require.Equal(t, uint32(1), order.Items[0].Quantity)
	require.InDelta(t, 10.90, order.Items[0].Price, 0.0001)
	require.Contains(t, order.Items[0].CorrelationID, "batch-1-")

	require.Equal(t, "Hide your heart", order.Items[1].Title)
	require.Empty(t, order.Items[1].Note)
	require.NotEqual(t, order.Items[0].CorrelationID, order.Items[1].CorrelationID)
}

func TestParseShiporder_MissingRequiredAttribute(t *testing.T) {
	input := `<shiporder>` +
		`<orderperson>John Smith</orderperson>` +
		`<shipto><name>n</name><address>a</address><city>c</city><country>c</country></shipto>` +
		`<item><title>t</title><quantity>1</quantity><price>1</price></item>` +
		`</shiporder>`

	var order shipOrder
	err := mlxml.Parse(shipOrderSchema(&order), []byte(input), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrAttributeNotFound)
}

func TestParseShiporder_AllocationFailureWhenNotDiscardable(t *testing.T) {
	schema := mlxml.ElementSchema{
		Name:     "root",
		MinOccur: 1, MaxOccur: 1,
		ChildOrder: mlxml.Sequence,
		Children: []mlxml.ElementSchema{
			{
				Name:     "item",
				MinOccur: 0, MaxOccur: 4294967295,
				Destination: mlxml.Dynamic(func(uint32, any) (any, bool) { return nil, false }),
				Content:     mlxml.StringOwned{MinLen: 0, MaxLen: 100},
			},
		},
	}

	err := mlxml.Parse(schema, []byte(`<root><item>x</item></root>`), nil, nil)
	require.ErrorIs(t, err, mlxml.ErrAllocationFailure)
}
