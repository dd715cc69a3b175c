package seed

import "github.com/medcare/frontdesk/internal/domain/roster"

// Departments returns a fresh copy of the reference departments. The
// doctors_registered values are the counts the hospital started with.
func Departments() []*roster.Department {
	return []*roster.Department{
		{ID: 1001, Name: "Eyes", Description: "Vision-related problems and diseases.", DoctorsRegistered: 2},
		{ID: 1002, Name: "ENT", Description: "Ear, nose, and throat related conditions.", DoctorsRegistered: 2},
		{ID: 1003, Name: "Dentist", Description: "Dental care and oral health.", DoctorsRegistered: 3},
		{ID: 1004, Name: "Orthopedic", Description: "Bone, joint, and musculoskeletal disorders.", DoctorsRegistered: 4},
		{ID: 1005, Name: "Cardiologist", Description: "Heart and cardiovascular diseases.", DoctorsRegistered: 4},
		{ID: 1006, Name: "Pulmonologist", Description: "Lung and respiratory issues.", DoctorsRegistered: 2},
		{ID: 1007, Name: "Oncologist", Description: "Cancer diagnosis and treatment.", DoctorsRegistered: 3},
		{ID: 1008, Name: "MD Physician", Description: "General medical care and treatment.", DoctorsRegistered: 4},
		{ID: 1009, Name: "Gastroenterologist", Description: "Digestive system diseases.", DoctorsRegistered: 3},
		{ID: 1010, Name: "Neurologist", Description: "Nervous system and brain disorders.", DoctorsRegistered: 4},
	}
}

// Doctors returns a fresh copy of the reference doctors.
func Doctors() []*roster.Doctor {
	return []*roster.Doctor{
		{ID: "D001", Name: "Dr. Ashok K. Patel", DepartmentID: 1001, Specialization: "Cataract Surgery,Glaucoma Treatment"},
		{ID: "D002", Name: "Dr. Mihir M. Patel", DepartmentID: 1001, Specialization: "Retina and Uvea Diseases, Lasik Surgery"},
		{ID: "D003", Name: "Dr. Bharat Vyas", DepartmentID: 1002, Specialization: "Cochlear Implants, ENT Surgery"},
		{ID: "D004", Name: "Dr. Ketan Shah", DepartmentID: 1002, Specialization: "Throat Cancer, Hearing Loss"},
		{ID: "D005", Name: "Dr. Bhavin B. Patel", DepartmentID: 1003, Specialization: "Cosmetic Dentistry, Implants"},
		{ID: "D006", Name: "Dr. Rupal Desai", DepartmentID: 1003, Specialization: "Implantology"},
		{ID: "D007", Name: "Dr. Kaushik Patel", DepartmentID: 1003, Specialization: "Tooth Surgery Expert"},
		{ID: "D008", Name: "Dr. Hitesh Chawda", DepartmentID: 1004, Specialization: "Joint Replacement Surgery"},
		{ID: "D009", Name: "Dr. Viral Ghandhi", DepartmentID: 1004, Specialization: "Best Orthopedic Surgery Expert"},
		{ID: "D010", Name: "Dr. Prathmesh K. Shah", DepartmentID: 1004, Specialization: "Spine Surgery, Trauma, and Sports Injuries"},
		{ID: "D011", Name: "Dr. Vishal Modi", DepartmentID: 1004, Specialization: "Orthopedic surgery, spine surgery, sports injuries"},
		{ID: "D012", Name: "Dr. Devang M. Patel", DepartmentID: 1005, Specialization: "Interventional Cardiology, Heart Disease Treatment"},
		{ID: "D013", Name: "Dr. Nirav Shah", DepartmentID: 1005, Specialization: "Cardiac Surgery, Angioplasty, Heart Disease Prevention"},
		{ID: "D014", Name: "Dr. Tejas Patel", DepartmentID: 1005, Specialization: "Best Robotic Cardio Surgery Expert all over India"},
		{ID: "D015", Name: "Dr. Shalin Mehta", DepartmentID: 1005, Specialization: "Cardiac electrophysiology, Interventional cardiology"},
		{ID: "D016", Name: "Dr. Chirag B. Patel", DepartmentID: 1006, Specialization: "Asthma, COPD, Sleep Apnea"},
		{ID: "D017", Name: "Dr. Samir Shah", DepartmentID: 1006, Specialization: "Pulmonary Diseases, Chest Infections"},
		{ID: "D018", Name: "Dr. Manish N. Shah", DepartmentID: 1007, Specialization: "Medical Oncology , Chemotherapy Expert"},
		{ID: "D019", Name: "Dr. Kirti Patel", DepartmentID: 1007, Specialization: "Breast Cancer Surgeon , Chemotheraphy Expert"},
		{ID: "D020", Name: "Dr. Niraj Gupta", DepartmentID: 1007, Specialization: "Surgical Oncology , Cancer Surgery"},
		{ID: "D021", Name: "Dr. Shital J. Mehta", DepartmentID: 1008, Specialization: "General Medicine , Preventive Health CheckUps"},
		{ID: "D022", Name: "Dr. Mitesh Shah", DepartmentID: 1008, Specialization: "Internal Medicine , Regular CheckUps"},
		{ID: "D023", Name: "Dr. Rajesh Shah", DepartmentID: 1008, Specialization: "General Medicine"},
		{ID: "D024", Name: "Dr. Pragnesh Patel", DepartmentID: 1008, Specialization: "General Medicine, Diabetes, Asthma"},
		{ID: "D025", Name: "Dr. Alok Vyas", DepartmentID: 1009, Specialization: "Hepatology , Gastrointestinal Endoscopy"},
		{ID: "D026", Name: "Dr. Sandeep Patel", DepartmentID: 1009, Specialization: "Gastroenterology , Liver Transplant"},
		{ID: "D027", Name: "Dr. Kunal Shah", DepartmentID: 1010, Specialization: "Epilepsy , Stroke , Neurocritical Care"},
		{ID: "D028", Name: "Dr. Nirav Shukla", DepartmentID: 1010, Specialization: "Neuroimmunology, Stroke, Movement Disorders"},
		{ID: "D029", Name: "Dr. Bhagaynadan Patel", DepartmentID: 1010, Specialization: "SuperSpecialist Neurology"},
		{ID: "D030", Name: "Dr. Amit Desai", DepartmentID: 1010, Specialization: "Neurology, Stroke, Neurodegenerative diseases"},
	}
}
