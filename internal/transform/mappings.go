package transform

import "schoolsdb/internal/table"

// DetailSchoolRenames maps the school directory detail extract onto the
// SchoolDetails table.
var DetailSchoolRenames = []table.Rename{
	{From: "SCHOOL_YEAR", To: "SchoolYear"},
	{From: "STATENAME", To: "StateName"},
	{From: "ST", To: "State"},
	{From: "SCH_NAME", To: "Name"},
	{From: "LEA_NAME", To: "LEAName"},
	{From: "STATE_AGENCY_NO", To: "StateAgencyNumber"},
	{From: "UNION", To: "Union"},
	{From: "ST_LEAID", To: "StateLEAID"},
	{From: "ST_SCHID", To: "StateSchoolID"},
	{From: "NCESSCH", To: "NCESSchoolID"},
	{From: "SCHID", To: "SchoolID"},
	{From: "MSTREET1", To: "MailingAddressLine1"},
	{From: "MSTREET2", To: "MailingAddressLine2"},
	{From: "MSTREET3", To: "MailingAddressLine3"},
	{From: "MCITY", To: "MailingCity"},
	{From: "MSTATE", To: "MailingState"},
	{From: "MZIP", To: "MailingZip"},
	{From: "MZIP4", To: "MailingZip4"},
	{From: "LSTREET1", To: "PhysicalAddressLine1"},
	{From: "LSTREET2", To: "PhysicalAddressLine2"},
	{From: "LSTREET3", To: "PhysicalAddressLine3"},
	{From: "LCITY", To: "PhysicalAddressCity"},
	{From: "LSTATE", To: "PhysicalAddressState"},
	{From: "LZIP", To: "PhysicalAddressZip"},
	{From: "LZIP4", To: "PhysicalAddressZip4"},
	{From: "PHONE", To: "Phone"},
	{From: "WEBSITE", To: "Website"},
	{From: "SY_STATUS", To: "SYStatus"},
	{From: "SY_STATUS_TEXT", To: "SYStatusDescription"},
	{From: "UPDATED_STATUS", To: "UpdatedStatus"},
	{From: "UPDATED_STATUS_TEXT", To: "UpdatedStatusText"},
	{From: "EFFECTIVE_DATE", To: "EffectiveDate"},
	{From: "SCH_TYPE_TEXT", To: "SchoolTypeText"},
	{From: "SCH_TYPE", To: "SchoolType"},
	{From: "RECON_STATUS", To: "Reconstituted"},
	{From: "OUT_OF_STATE_FLAG", To: "OutOfState"},
	{From: "CHARTER_TEXT", To: "Charter"},
	{From: "CHARTAUTH1", To: "CharterAuthorizer1"},
	{From: "CHARTAUTHN1", To: "CharterAuthorizerN1"},
	{From: "CHARTAUTH2", To: "CharterAuthorizer2"},
	{From: "CHARTAUTHN2", To: "CharterAuthorizerN2"},
	{From: "NOGRADES", To: "NoGrades"},
	{From: "G_PK_OFFERED", To: "PK"},
	{From: "G_KG_OFFERED", To: "KG"},
	{From: "G_1_OFFERED", To: "01"},
	{From: "G_2_OFFERED", To: "02"},
	{From: "G_3_OFFERED", To: "03"},
	{From: "G_4_OFFERED", To: "04"},
	{From: "G_5_OFFERED", To: "05"},
	{From: "G_6_OFFERED", To: "06"},
	{From: "G_7_OFFERED", To: "07"},
	{From: "G_8_OFFERED", To: "08"},
	{From: "G_9_OFFERED", To: "09"},
	{From: "G_10_OFFERED", To: "10"},
	{From: "G_11_OFFERED", To: "11"},
	{From: "G_12_OFFERED", To: "12"},
	{From: "G_13_OFFERED", To: "13"},
	{From: "G_UG_OFFERED", To: "Ungraded"},
	{From: "G_AE_OFFERED", To: "AdultEducation"},
	{From: "GSLO", To: "GradeOfferedLow"},
	{From: "GSHI", To: "GradeOfferedHigh"},
	{From: "LEVEL", To: "Level"},
	{From: "IGOFFERED", To: "IGOffered"},
}

// DirectorySchoolRenames maps the public school directory extract onto the
// Schools table.
var DirectorySchoolRenames = []table.Rename{
	{From: "SCHOOL_YEAR", To: "SchoolYear"},
	{From: "ST", To: "State"},
	{From: "STATENAME", To: "Description"},
	{From: "SCH_NAME", To: "Name"},
	{From: "ST_LEAID", To: "StateLEAID"},
	{From: "ST_SCHID", To: "StateSchoolID"},
	{From: "NCESSCH", To: "NCESSchoolID"},
	{From: "SCHID", To: "SchoolID"},
	{From: "SHARED_TIME", To: "SharedTime"},
	{From: "NSLP_STATUS", To: "NSLPStatus"},
	{From: "NSLP_STATUS_TEXT", To: "NSLPDescription"},
	{From: "VIRTUAL", To: "Virtual"},
	{From: "VIRTUAL_TEXT", To: "VirtualDescription"},
}

// DirectorySchoolColumns is the column set of the Schools table, after the
// identifying keys.
var DirectorySchoolColumns = []string{
	"SchoolID",
	"SchoolYear",
	"StateID",
	"State",
	"Name",
	"STATE_AGENCY_NO",
	"UNION",
	"StateLEAID",
	"LEAID",
	"StateSchoolID",
	"NCESSchoolID",
	"SharedTime",
	"NSLPStatus",
	"NSLPDescription",
	"Virtual",
	"VirtualDescription",
}

var CharacteristicsRenames = []table.Rename{
	{From: "SCHOOL_YEAR", To: "SchoolYear"},
	{From: "SCHID", To: "SchoolID"},
	{From: "SHARED_TIME", To: "SharedTime"},
	{From: "NSLP_STATUS", To: "NSLPStatus"},
	{From: "NSLP_STATUS_TEXT", To: "NSLPDescription"},
	{From: "VIRTUAL", To: "Virtual"},
	{From: "VIRTUAL_TEXT", To: "VirtualDescription"},
}

var DemographicsRenames = []table.Rename{
	{From: "SCHID", To: "SchoolID"},
	{From: "SCHOOL_YEAR", To: "SchoolYear"},
	{From: "GRADE", To: "Grade"},
	{From: "RACE_ETHNICITY", To: "RaceEthnicity"},
	{From: "SEX", To: "Gender"},
	{From: "STUDENT_COUNT", To: "StudentCount"},
	{From: "TOTAL_INDICATOR", To: "TotalIndicator"},
	{From: "DMS_FLAG", To: "DMSFlag"},
}

// PrivateSchoolRenames is empty, private school extracts are loaded as is.
var PrivateSchoolRenames = []table.Rename{}

// FlagCodes are the codes of four-valued yes/no columns.
var FlagCodes = map[string]string{
	"Yes":            "Y",
	"No":             "N",
	"Not reported":   "U",
	"Not applicable": "NA",
}
