package httptransport

import "expvar"

var (
	metricRegisterTotal  = expvar.NewInt("token_register_total")
	metricRegisterErrors = expvar.NewInt("token_register_errors_total")

	metricNearbyQueryTotal  = expvar.NewInt("nearby_query_total")
	metricNearbyQueryErrors = expvar.NewInt("nearby_query_errors_total")

	metricEventTotal        = expvar.NewInt("nfc_event_total")
	metricEventBlockedTotal = expvar.NewInt("nfc_event_blocked_total")

	metricSyncTotal = expvar.NewInt("summon_sync_total")
)
