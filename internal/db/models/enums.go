package models

// AnimalStatus is the shelter status of an animal.
type AnimalStatus string

const (
	AnimalStatusNewArrival AnimalStatus = "NEW_ARRIVAL"
	AnimalStatusAdoptable  AnimalStatus = "ADOPTABLE"
	AnimalStatusTreatment  AnimalStatus = "TREATMENT"
	AnimalStatusUnset      AnimalStatus = "UNSET"
)

// AnimalStatuses lists every animal status.
func AnimalStatuses() []AnimalStatus {
	return []AnimalStatus{AnimalStatusNewArrival, AnimalStatusAdoptable, AnimalStatusTreatment, AnimalStatusUnset}
}

// ReportStatus is the processing state of a report.
type ReportStatus string

const (
	ReportStatusAwaiting    ReportStatus = "AWAITING"
	ReportStatusInProgress  ReportStatus = "IN_PROGRESS"
	ReportStatusUnderReview ReportStatus = "UNDER_REVIEW"
	ReportStatusApproved    ReportStatus = "APPROVED"
	ReportStatusRejected    ReportStatus = "REJECTED"
	ReportStatusCompleted   ReportStatus = "COMPLETED"
	ReportStatusCancelled   ReportStatus = "CANCELLED"
	ReportStatusOnHold      ReportStatus = "ON_HOLD"
)

// ReportStatuses lists every report status.
func ReportStatuses() []ReportStatus {
	return []ReportStatus{
		ReportStatusAwaiting,
		ReportStatusInProgress,
		ReportStatusUnderReview,
		ReportStatusApproved,
		ReportStatusRejected,
		ReportStatusCompleted,
		ReportStatusCancelled,
		ReportStatusOnHold,
	}
}

// Species of a sheltered animal.
type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesOther Species = "OTHER"
)

// Gender of an animal or a person.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderUnset  Gender = "UNSET"
)
