// Package services provides domain services that span more than one aggregate.
//
// The package includes:
//   - Shipper: reserves product stock and creates the matching assignment
//   - ArchivePolicy: decides which terminal statuses leave the working set
package services
