package httptransport

import "expvar"

var (
	metricHuntTotal       = expvar.NewInt("hunt_total")
	metricTransferTotal   = expvar.NewInt("transfer_total")
	metricTransferVolume  = expvar.NewInt("transfer_volume")
	metricPurchaseTotal   = expvar.NewInt("purchase_total")
	metricTopUpTotal      = expvar.NewInt("topup_total")
	metricTopUpVolume     = expvar.NewInt("topup_volume")
	metricCasinoPlayTotal = expvar.NewInt("casino_play_total")
	metricCasinoStaked    = expvar.NewInt("casino_staked_total")
	metricCasinoPaidOut   = expvar.NewInt("casino_paid_out_total")
	metricDuelOpenTotal   = expvar.NewInt("duel_open_total")
	metricDuelSettled     = expvar.NewInt("duel_settled_total")
	metricQuizWonTotal    = expvar.NewInt("quiz_won_total")
	metricQuizLostTotal   = expvar.NewInt("quiz_lost_total")
	metricMarriageTotal   = expvar.NewInt("marriage_total")
	metricPetHatchTotal   = expvar.NewInt("pet_hatch_total")
	metricRequestErrors   = expvar.NewInt("api_errors_total")
)
