package dataprocessing

import (
	"fmt"
	"math/rand"
	"time"

	"salesdash/internal/tabular"
)

var (
	sampleChannels   = []string{"Wholesale", "Distributor", "Export", "Retail"}
	sampleCities     = []string{"Paris", "Lyon", "Marseille", "Toulouse", "Bordeaux", "Lille"}
	sampleWarehouses = []string{"WARE-NMK1003", "WARE-UHY1004", "WARE-XYS1001"}
	sampleProducts   = []string{
		"Accessoires de bureau", "Mobilier ergonomique", "Papeterie premium",
		"Rangement modulaire", "Eclairage LED", "Fournitures d'expedition",
	}
	sampleCustomers = []string{
		"Medline", "Pure Group", "Apollo Ltd", "Ei", "OUR Ltd",
		"Trigem", "Linde", "Qualitest", "3LAB Ltd", "New Ltd",
	}
)

// GenerateSampleData builds a deterministic synthetic sales table covering
// the two calendar years ending with endYear. The same seed always yields
// the same table, so measures computed on a seeded sample are stable.
func GenerateSampleData(n int, seed int64, endYear int) *tabular.Table {
	rng := rand.New(rand.NewSource(seed))

	table := tabular.New([]string{
		"OrderNumber", "OrderDate", "Ship Date", "Customer Name",
		"Customer Index", "Channel", "Currency Code", "Warehouse Code",
		"Delivery Region Index", "City", "Product Description",
		"Order Quantity", "Unit Selling Price", "Unit Cost",
	})

	rangeStart := time.Date(endYear-1, time.January, 1, 0, 0, 0, 0, time.UTC)
	totalDays := 730

	for i := 0; i < n; i++ {
		orderDate := rangeStart.AddDate(0, 0, rng.Intn(totalDays))
		shipDate := orderDate.AddDate(0, 0, 1+rng.Intn(14))
		customerIdx := rng.Intn(len(sampleCustomers))
		regionIdx := rng.Intn(len(sampleCities))
		unitPrice := 5 + rng.Float64()*95
		// Cost tracks price with a 45-75% ratio so profit stays plausible.
		unitCost := unitPrice * (0.45 + rng.Float64()*0.3)

		table.AppendRow([]tabular.Cell{
			tabular.String(fmt.Sprintf("SO-%06d", i+1)),
			tabular.Date(orderDate),
			tabular.Date(shipDate),
			tabular.String(sampleCustomers[customerIdx]),
			tabular.Number(float64(customerIdx + 1)),
			tabular.String(sampleChannels[rng.Intn(len(sampleChannels))]),
			tabular.String("EUR"),
			tabular.String(sampleWarehouses[rng.Intn(len(sampleWarehouses))]),
			tabular.Number(float64(regionIdx + 1)),
			tabular.String(sampleCities[regionIdx]),
			tabular.String(sampleProducts[rng.Intn(len(sampleProducts))]),
			tabular.Number(float64(1 + rng.Intn(30))),
			tabular.Number(unitPrice),
			tabular.Number(unitCost),
		})
	}

	return table
}
