package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PlantationsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farm_plantations_created_total",
		Help: "Total number of plantations appended to the registry",
	})
	PlantationsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_plantations_rejected_total",
		Help: "Plantation creation attempts that produced no record, by reason",
	}, []string{"reason"})
	PlantationsPurgedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farm_plantations_purged_total",
		Help: "Test plantations removed from the registry",
	})
	RegistryReadWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farm_registry_read_warnings_total",
		Help: "Registry reads that degraded to a partial or empty result",
	})
	LandCheckTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_land_check_total",
		Help: "Advisory land/sea lookups by outcome",
	}, []string{"outcome"})
	InventoryMovementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_inventory_units_total",
		Help: "Fruit units moved through the inventory, by operation",
	}, []string{"operation"})
	RevenueTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "farm_revenue_total",
		Help: "Money credited to the treasury by sales",
	})
)

func init() {
	prometheus.MustRegister(PlantationsCreatedTotal)
	prometheus.MustRegister(PlantationsRejectedTotal)
	prometheus.MustRegister(PlantationsPurgedTotal)
	prometheus.MustRegister(RegistryReadWarningsTotal)
	prometheus.MustRegister(LandCheckTotal)
	prometheus.MustRegister(InventoryMovementsTotal)
	prometheus.MustRegister(RevenueTotal)
}

func Handler() http.Handler { return promhttp.Handler() }
