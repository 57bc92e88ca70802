package services

import "dispatch/internal/core/domain/model/assignment"

// ArchivePolicy decides which terminal statuses are moved out of the working set.
// Delivered records are always archived; cancelled records stay in the working
// set unless archiveCancelled is set.
type ArchivePolicy struct {
	archiveCancelled bool
}

func NewArchivePolicy(archiveCancelled bool) ArchivePolicy {
	return ArchivePolicy{archiveCancelled: archiveCancelled}
}

// Archivable reports whether an assignment in status s should be archived.
func (p ArchivePolicy) Archivable(s assignment.Status) bool {
	switch s {
	case assignment.Delivered:
		return true
	case assignment.Cancelled:
		return p.archiveCancelled
	default:
		return false
	}
}

// Statuses lists the archivable statuses, for the sweeper's scan.
func (p ArchivePolicy) Statuses() []assignment.Status {
	statuses := []assignment.Status{assignment.Delivered}
	if p.archiveCancelled {
		statuses = append(statuses, assignment.Cancelled)
	}
	return statuses
}
