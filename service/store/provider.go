package store

import "gorm.io/gorm"

// Stores bundles every entity store the handlers need. Swapping the
// bundle swaps the whole backing data source without touching handlers.
type Stores struct {
	Patients     PatientStore
	Doctors      DoctorStore
	Appointments AppointmentStore
	Products     ProductStore
	Education    EducationStore
	Fees         FeeStore
	Messages     MessageStore
	Users        UserStore
}

// GormStores backs everything with the Postgres database.
func GormStores(db *gorm.DB) Stores {
	return Stores{
		Patients:     NewGormPatientStore(db),
		Doctors:      NewGormDoctorStore(db),
		Appointments: NewGormAppointmentStore(db),
		Products:     NewGormProductStore(db),
		Education:    NewGormEducationStore(db),
		Fees:         NewGormFeeStore(db),
		Messages:     NewGormMessageStore(db),
		Users:        NewGormUserStore(db),
	}
}

// MemoryStores backs everything with in-process maps. Used by tests and
// the demo mode.
func MemoryStores() Stores {
	return Stores{
		Patients:     NewMemoryPatientStore(),
		Doctors:      NewMemoryDoctorStore(),
		Appointments: NewMemoryAppointmentStore(),
		Products:     NewMemoryProductStore(),
		Education:    NewMemoryEducationStore(),
		Fees:         NewMemoryFeeStore(),
		Messages:     NewMemoryMessageStore(),
		Users:        NewMemoryUserStore(),
	}
}

// WithRemote points the four core list entities at a remote provider while
// the rest stay on the local bundle. Sessions, messages, fees and user
// accounts are always owned by this service.
func (s Stores) WithRemote(cfg RemoteConfig) Stores {
	s.Patients = NewRemotePatientStore(cfg)
	s.Doctors = NewRemoteDoctorStore(cfg)
	s.Appointments = NewRemoteAppointmentStore(cfg)
	s.Products = NewRemoteProductStore(cfg)
	return s
}
