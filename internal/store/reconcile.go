package store

import "portaria-backend/internal/model"

// mergePending reconciles the remote-sourced pending list with the local
// cache's pending entries into one logical set, de-duplicated by pickup
// code. The remote copy always wins a conflict; remote entries keep their
// queried order (most recent first) and local-only entries are appended
// in their stored order.
func mergePending(remote, local []model.Delivery) []model.Delivery {
	merged := make([]model.Delivery, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote))

	for _, d := range remote {
		merged = append(merged, d)
		seen[d.PickupCode] = struct{}{}
	}
	for _, d := range local {
		if !d.Pending() {
			continue
		}
		if _, ok := seen[d.PickupCode]; ok {
			continue
		}
		seen[d.PickupCode] = struct{}{}
		merged = append(merged, d)
	}
	return merged
}
