package kraken

import (
	"context"
	"encoding/json"
	"iter"

	"krakenbridge/pkg/core"
)

// ClosedOrderPages walks closed orders from req.Offset onwards, one private
// call per page. Each yielded value is a full result with entries under
// "closed". Iteration stops after the last page or the first error.
func (e *KrakenExchange) ClosedOrderPages(ctx context.Context, req ClosedOrdersRequest) iter.Seq2[map[string]any, error] {
	return pages("closed", req.Offset.OrElse(0), func(ofs int64) (map[string]any, error) {
		r := req
		r.Offset = core.Some(ofs)
		return e.ClosedOrders(ctx, r)
	})
}

// TradeHistoryPages walks the trade history the same way, with entries under
// "trades".
func (e *KrakenExchange) TradeHistoryPages(ctx context.Context, req TradesHistoryRequest) iter.Seq2[map[string]any, error] {
	return pages("trades", req.Offset.OrElse(0), func(ofs int64) (map[string]any, error) {
		r := req
		r.Offset = core.Some(ofs)
		return e.TradesHistory(ctx, r)
	})
}

// pages advances the offset by the entries actually returned. It stops when
// the reported total is reached, a page is empty, or, without a total, a page
// comes back short.
func pages(key string, ofs int64, fetch func(ofs int64) (map[string]any, error)) iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		for {
			page, err := fetch(ofs)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(page, nil) {
				return
			}

			n := entryCount(page[key])
			ofs += int64(n)
			total, hasTotal := pageTotal(page["count"])
			switch {
			case n == 0:
				return
			case hasTotal && ofs >= total:
				return
			case !hasTotal && n < PageSize:
				return
			}
		}
	}
}

func entryCount(v any) int {
	switch entries := v.(type) {
	case map[string]any:
		return len(entries)
	case []any:
		return len(entries)
	default:
		return 0
	}
}

func pageTotal(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
