// Package shipmentservice contains the Shipline shipment module: shipment
// CRUD, the status lifecycle engine with its append-only history log, file
// attachments and public tracking.
//
// The module keeps domain/application logic decoupled from runtime/platform
// concerns through ports and adapter composition.
package shipmentservice
