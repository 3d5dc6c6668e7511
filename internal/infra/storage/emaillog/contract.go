package emaillog

import "github.com/collegeprep/CPS-AppointmentService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
