package model

// Record is implemented by every entity the repository stores.
// The identity is assigned by the repository and never reassigned.
type Record interface {
	RecordID() uint
	SetRecordID(id uint)
}

// Kind names a record type in logs and metrics
type Kind string

const (
	KindEmployee   Kind = "employee"
	KindDepartment Kind = "department"
	KindTask       Kind = "task"
	KindReview     Kind = "review"
)

// RefCopier is implemented by records holding pointer or slice members.
// CopyRefs replaces those members with private copies.
type RefCopier interface {
	CopyRefs()
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
