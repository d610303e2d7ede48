package domain

import "time"

// CustomersKpis são os indicadores de clientes do período. NewCount conta
// clientes cujo primeiro pedido cai no período; TotalCount conta a base
// inteira de clientes não removidos, independente do período.
type CustomersKpis struct {
	NewCount   int `json:"new_count"`
	TotalCount int `json:"total_count"`
}

// DailyCountRow é uma linha bruta de contagem por dia retornada pelo repositório
type DailyCountRow struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// CountPoint é um ponto de série temporal de contagens (um por dia com eventos)
type CountPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CustomersAnalyticsResponse é o envelope do endpoint de analytics de clientes.
// A série registra novos clientes por dia de primeiro pedido.
type CustomersAnalyticsResponse struct {
	Range  DateRange     `json:"range"`
	Kpis   CustomersKpis `json:"kpis"`
	Series []CountPoint  `json:"series"`
}
