package db

import (
	"fmt"
	"os"
	"time"

	"github.com/lib/pq"
	"github.com/medicore-labs/hms-server/cmd/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads the demo dataset. It is idempotent at the table level:
// tables that already contain rows are left untouched.
func Seed(DB *gorm.DB) error {
	if err := seedAdmin(DB); err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	if err := seedTable(DB, &models.Patient{}, demoPatients()); err != nil {
		return fmt.Errorf("seeding patients: %w", err)
	}
	if err := seedTable(DB, &models.Doctor{}, demoDoctors()); err != nil {
		return fmt.Errorf("seeding doctors: %w", err)
	}
	if err := seedTable(DB, &models.Appointment{}, demoAppointments()); err != nil {
		return fmt.Errorf("seeding appointments: %w", err)
	}
	if err := seedTable(DB, &models.MedicineProduct{}, demoProducts()); err != nil {
		return fmt.Errorf("seeding medicine products: %w", err)
	}
	if err := seedTable(DB, &models.EducationContent{}, demoEducationContents()); err != nil {
		return fmt.Errorf("seeding education contents: %w", err)
	}
	if err := seedTable(DB, &models.PatientFee{}, demoFees()); err != nil {
		return fmt.Errorf("seeding patient fees: %w", err)
	}
	if err := seedTable(DB, &models.Message{}, demoMessages()); err != nil {
		return fmt.Errorf("seeding messages: %w", err)
	}
	return nil
}

func seedTable[T any](DB *gorm.DB, model *T, rows []T) error {
	var count int64
	if err := DB.Model(model).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&rows).Error
}

func seedAdmin(DB *gorm.DB) error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "superadmin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:           "admin",
		Username:     "superadmin123",
		PasswordHash: string(hash),
		Name:         "Dadaxanov Oqiljon",
		Role:         "Admin",
		Avatar:       "/placeholder.svg",
	}
	return DB.Create(&admin).Error
}

func demoPatients() []models.Patient {
	return []models.Patient{
		{ID: "p1", Name: "Elizabeth Polson", Age: 32, Gender: "Female", BloodGroup: "B+ve", PhoneNumber: "+91 12345 67890", Email: "elizabethpolson@hotmail.com", Avatar: "/placeholder.svg"},
		{ID: "p2", Name: "John David", Age: 28, Gender: "Male", BloodGroup: "B+ve", PhoneNumber: "+91 12345 67890", Email: "davidjohn22@gmail.com", Avatar: "/placeholder.svg"},
		{ID: "p3", Name: "Krishtov Rajan", Age: 24, Gender: "Male", BloodGroup: "AB+ve", PhoneNumber: "+91 12345 67890", Email: "krishtovrajan2@gmail.com", Avatar: "/placeholder.svg"},
		{ID: "p4", Name: "Sumanth Tirson", Age: 26, Gender: "Male", BloodGroup: "O+ve", PhoneNumber: "+91 12345 67890", Email: "tirtim@gmail.com", Avatar: "/placeholder.svg"},
		{ID: "p5", Name: "Ed Subramani", Age: 77, Gender: "Male", BloodGroup: "AB+ve", PhoneNumber: "+91 12345 67890", Email: "egs3122@gmail.com", Avatar: "/placeholder.svg"},
		{ID: "p6", Name: "Ranjan Maari", Age: 77, Gender: "Male", BloodGroup: "O+ve", PhoneNumber: "+91 12345 67890", Email: "ranjanmaari@yahoo.com", Avatar: "/placeholder.svg"},
		{ID: "p7", Name: "Philipie Gopal", Age: 55, Gender: "Male", BloodGroup: "O-ve", PhoneNumber: "+91 12345 67890", Email: "gopal22@gmail.com", Avatar: "/placeholder.svg"},
	}
}

func demoDoctors() []models.Doctor {
	return []models.Doctor{
		{ID: "d1", Name: "Dr. John Paulliston", Specialization: "Cardiologist", Qualification: "Doctor's degree in medicine (MBBS)", PhoneNumber: "+91 12345 67890", FloorRoom: "1/219", DayOff: "Sun - Wed & Govt. Holiday", Gender: "Male", Age: 45, Avatar: "/placeholder.svg"},
		{ID: "d2", Name: "Dr. Joel Paulliston", Specialization: "Neurologist", Qualification: "Surgery (MBBS)", PhoneNumber: "+91 12345 67890", FloorRoom: "2/76", DayOff: "Fri & Govt. Holiday", Gender: "Male", Age: 38, Avatar: "/placeholder.svg"},
		{ID: "d3", Name: "Dr. Sarah", Specialization: "Pediatrician", Qualification: "BPT (Bachelor of Physiotherapy)", PhoneNumber: "+91 12345 67890", FloorRoom: "3/43", DayOff: "Tue - Thurs & Govt. Holiday", Gender: "Female", Age: 35, Avatar: "/placeholder.svg"},
		{ID: "d4", Name: "Dr. Michael", Specialization: "Orthopedic", Qualification: "BPT (Bachelor of Physiotherapy)", PhoneNumber: "+91 12345 67890", FloorRoom: "5/24", DayOff: "Mon & Govt. Holiday", Gender: "Male", Age: 42, Avatar: "/placeholder.svg"},
	}
}

func demoAppointments() []models.Appointment {
	return []models.Appointment{
		{ID: "a1", PatientID: "p1", DoctorID: "d1", Time: "9:30 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusPaid},
		{ID: "a2", PatientID: "p2", DoctorID: "d2", Time: "9:30 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusUnpaid},
		{ID: "a3", PatientID: "p3", DoctorID: "d2", Time: "10:30 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusPaid},
		{ID: "a4", PatientID: "p4", DoctorID: "d1", Time: "11:00 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusUnpaid},
		{ID: "a5", PatientID: "p5", DoctorID: "d1", Time: "11:30 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusUnpaid},
		{ID: "a6", PatientID: "p6", DoctorID: "d1", Time: "11:00 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusUnpaid},
		{ID: "a7", PatientID: "p7", DoctorID: "d1", Time: "11:00 AM", Date: "05/12/2022", Status: models.AppointmentScheduled, FeeStatus: models.FeeStatusPaid},
	}
}

func demoProducts() []models.MedicineProduct {
	return []models.MedicineProduct{
		{ID: "med1", Name: "Albuterol (salbutamol)", Type: "Inhaler", Price: 28.55, Stock: 100, Unit: "pcs", ExpiryDate: "01 Jun 2024", Manufacturer: "John's Health Care", Category: "RESPIRATORY"},
		{ID: "med2", Name: "Amoxicillin 250 mg", Type: "Tablet", Price: 40.55, Stock: 28, Unit: "pcs", ExpiryDate: "21 Jul 2023", Manufacturer: "Patheon Pvt Ltd", Category: "ANTIBIOTICS"},
		{ID: "med3", Name: "Aspirin 300 mg", Type: "Tablet", Price: 28.55, Stock: 150, Unit: "pcs", ExpiryDate: "01 Jun 2024", Manufacturer: "David's Ltd", Category: "ANALGESICS"},
		{ID: "med4", Name: "Benadryl 500 ml", Type: "Syrup", Price: 77.55, Stock: 80, Unit: "ml", ExpiryDate: "28 Apr 2025", Manufacturer: "Johnson & Johnson", Category: "RESPIRATORY"},
		{ID: "med5", Name: "Butenafine 100 g", Type: "Cream", Price: 70.55, Stock: 100, Unit: "pcs", ExpiryDate: "01 Jun 2024", Manufacturer: "Michel's Lab", Category: "DERMATOLOGY"},
		{ID: "med6", Name: "Cefixime 100 mg", Type: "Capsule", Price: 28.55, Stock: 100, Unit: "pcs", ExpiryDate: "01 Jun 2024", Manufacturer: "David's Ltd", Category: "ANTIBIOTICS"},
		{ID: "med7", Name: "KZ Soap 250g", Type: "Soap", Price: 250.55, Stock: 55, Unit: "pcs", ExpiryDate: "01 Feb 2024", Manufacturer: "John's Health Care", Category: "DERMATOLOGY"},
		{ID: "med8", Name: "Paracetamol 250mg", Type: "Tablet", Price: 28.55, Stock: 200, Unit: "pcs", ExpiryDate: "08 Sep 2024", Manufacturer: "Joe Industries", Category: "ANALGESICS"},
	}
}

func demoEducationContents() []models.EducationContent {
	return []models.EducationContent{
		{
			ID:          "ec1",
			Title:       "4 Nutritions to Take Daily",
			Description: "Essential nutrients everyone should include in their daily diet for optimal health.",
			Author:      "Dr. Lisa Peterson",
			Thumbnail:   "/placeholder.svg",
			Content:     "<h1>Essential Daily Nutrients</h1><p>Maintaining a balanced diet is crucial for overall health. Here are four essential nutrients you should consume daily: Vitamin D, Omega-3 fatty acids, fiber and protein.</p><p>Remember to consult with your healthcare provider before making significant changes to your diet.</p>",
			Category:    "Nutrition",
			AssignedTo:  pq.StringArray{"p1", "p3"},
		},
		{
			ID:          "ec2",
			Title:       "5 Healthy Lifestyle Tips",
			Description: "Simple lifestyle changes that can significantly improve your overall health and wellbeing.",
			Author:      "Dr. John Morrison",
			Thumbnail:   "/placeholder.svg",
			Content:     "<h1>5 Healthy Lifestyle Tips</h1><p>Prioritize sleep, stay hydrated, move regularly, practice mindfulness and maintain social connections.</p><p>Small, consistent changes are more sustainable than dramatic lifestyle overhauls.</p>",
			Category:    "Lifestyle",
			AssignedTo:  pq.StringArray{"p2", "p4"},
		},
		{
			ID:          "ec3",
			Title:       "Do's and Don'ts in Hospital",
			Description: "Important guidelines to follow when visiting or staying in a hospital environment.",
			Author:      "Dr. Jeff Peterson",
			Thumbnail:   "/placeholder.svg",
			Content:     "<h1>Hospital Do's and Don'ts</h1><p>Follow staff instructions, practice good hygiene and respect quiet hours. Don't visit if you're sick, and don't use mobile phones in restricted areas.</p><p>Following these guidelines helps create a healing environment for all patients.</p>",
			Category:    "Patient Education",
			AssignedTo:  pq.StringArray{"p5"},
		},
		{
			ID:          "ec4",
			Title:       "Healthy Habits to Follow",
			Description: "Simple daily habits that can lead to better health outcomes and improved quality of life.",
			Author:      "Dr. Emily Rodriguez",
			Thumbnail:   "/placeholder.svg",
			Content:     "<h1>Healthy Habits for Better Living</h1><p>Hydrate first thing in the morning, take movement breaks during the day and limit screen time in the evening.</p><p>Forming new habits takes time. Start with one or two changes and gradually incorporate more as these become routine.</p>",
			Category:    "Lifestyle",
			AssignedTo:  pq.StringArray{"p6", "p7"},
		},
	}
}

func demoFees() []models.PatientFee {
	return []models.PatientFee{
		{PatientID: "p5", Amount: 150, Status: models.FeePending, Date: "2023-05-15"},
		{PatientID: "p1", Amount: 200, Status: models.FeePending, Date: "2023-05-16"},
		{PatientID: "p4", Amount: 175, Status: models.FeePending, Date: "2023-05-17"},
		{PatientID: "p3", Amount: 225, Status: models.FeePending, Date: "2023-05-18"},
	}
}

func demoMessages() []models.Message {
	now := time.Now()
	at := func(minutesAgo int) time.Time { return now.Add(-time.Duration(minutesAgo) * time.Minute) }

	return []models.Message{
		{ID: "m1", SenderID: "p1", ReceiverID: "admin", Content: "Hi I need to meet Dr. Joel tomorrow urgently. Please arrange appointment.", Timestamp: at(90), Read: true},
		{ID: "m2", SenderID: "admin", ReceiverID: "p1", Content: "Unfortunately, all of his appointments for tomorrow are fully booked. We do have a cancellation list, and sometimes patients cancel their appointments at the last minute. If you would like, I can put you on the cancellation list and call you if a slot becomes available.", Timestamp: at(87), Read: true},
		{ID: "m3", SenderID: "p1", ReceiverID: "admin", Content: "Could you please check if there are any other available times for an appointment as this is an Emergency situation.", Timestamp: at(83), Read: true},
		{ID: "m4", SenderID: "admin", ReceiverID: "p1", Content: "Dr. Joel has agreed to see you tomorrow at 9:00 am due to the urgency of your situation.", Timestamp: at(75), Read: true},
		{ID: "m5", SenderID: "p1", ReceiverID: "admin", Content: "Thank you for scheduling my appointment. I confirm that I will be present tomorrow at the designated time.", Timestamp: at(65), Read: true},
		{ID: "m6", SenderID: "p2", ReceiverID: "admin", Content: "Hello, I need to reschedule my appointment for next week.", Timestamp: at(150), Read: false},
		{ID: "m7", SenderID: "d1", ReceiverID: "admin", Content: "Please inform all my patients that I'll be on leave next Monday.", Timestamp: at(60 * 24), Read: true},
		{ID: "m8", SenderID: "p3", ReceiverID: "admin", Content: "Can you send me the lab results from my last visit?", Timestamp: at(60 * 48), Read: true},
		{ID: "m9", SenderID: "admin", ReceiverID: "p3", Content: "I've attached your lab results. Please let me know if you have any questions.", Timestamp: at(60*48 - 10), Read: true},
		{ID: "m10", SenderID: "p4", ReceiverID: "admin", Content: "I'm experiencing severe headaches. Should I come in for an emergency appointment?", Timestamp: at(60 * 72), Read: true},
		{ID: "m11", SenderID: "admin", ReceiverID: "p4", Content: "Yes, please come in immediately. I've scheduled an emergency appointment with Dr. Michael at 2 PM today.", Timestamp: at(60*72 - 15), Read: true},
	}
}
