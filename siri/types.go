package siri

import transitTypes "github.com/theoremus-urban-solutions/transit-types/siri"

// Response is the top-level SIRI response structure
type Response struct {
	Siri ServiceDeliveryWrapper `json:"Siri"`
}

// ServiceDeliveryWrapper wraps the ServiceDelivery element
type ServiceDeliveryWrapper struct {
	ServiceDelivery ServiceDelivery `json:"ServiceDelivery"`
}

// ServiceDelivery carries the delivery types the replay service produces.
// SituationExchange stays in the envelope for profile compatibility but the
// replay engine never emits situations.
type ServiceDelivery struct {
	ResponseTimestamp         string                                   `json:"ResponseTimestamp"`
	ProducerRef               string                                   `json:"ProducerRef,omitempty"`
	VehicleMonitoringDelivery []VehicleMonitoring                      `json:"VehicleMonitoringDelivery"`
	SituationExchangeDelivery []transitTypes.SituationExchangeDelivery `json:"SituationExchangeDelivery"`
}
