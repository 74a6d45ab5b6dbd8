package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionCorrectionCreate  Permission = "correction.create"
	PermissionCorrectionApprove Permission = "correction.approve"

	// Geofence
	PermissionLocationView   Permission = "location.view"
	PermissionLocationManage Permission = "location.manage"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"
	PermissionLeaveManage  Permission = "leave.manage"

	// Overtime
	PermissionOvertimeViewOwn Permission = "overtime.view_own"
	PermissionOvertimeCreate  Permission = "overtime.create"
	PermissionOvertimeViewAll Permission = "overtime.view_all"
	PermissionOvertimeApprove Permission = "overtime.approve"

	// Lateness
	PermissionLatenessViewOwn Permission = "lateness.view_own"
	PermissionLatenessViewAll Permission = "lateness.view_all"
	PermissionLatenessExcuse  Permission = "lateness.excuse"

	// Shifts
	PermissionShiftView    Permission = "shift.view"
	PermissionShiftSwap    Permission = "shift.swap"
	PermissionShiftManage  Permission = "shift.manage"
	PermissionShiftApprove Permission = "shift.approve"

	// Timesheets
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetCreate  Permission = "timesheet.create"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Holidays
	PermissionHolidayView   Permission = "holiday.view"
	PermissionHolidayManage Permission = "holiday.manage"

	// Work from home
	PermissionWFHCreate  Permission = "wfh.create"
	PermissionWFHViewOwn Permission = "wfh.view_own"
	PermissionWFHViewAll Permission = "wfh.view_all"
	PermissionWFHApprove Permission = "wfh.approve"

	// Reports
	PermissionReportsViewOwn Permission = "reports.view_own"
	PermissionReportsView    Permission = "reports.view"

	// Administration
	PermissionUserManage Permission = "user.manage"
	PermissionJobsRun    Permission = "jobs.run"
)

// RoleParents defines inheritance: a role holds its own permissions plus its parent's.
var RoleParents = map[Role]Role{
	RoleManager: RoleEmployee,
	RoleAdmin:   RoleManager,
}

// RolePermissions maps roles to the permissions they add on top of their parent.
var RolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionAttendanceCreate,
		PermissionAttendanceViewOwn,
		PermissionCorrectionCreate,
		PermissionLocationView,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionOvertimeViewOwn,
		PermissionOvertimeCreate,
		PermissionLatenessViewOwn,
		PermissionShiftView,
		PermissionShiftSwap,
		PermissionTimesheetViewOwn,
		PermissionTimesheetCreate,
		PermissionHolidayView,
		PermissionWFHCreate,
		PermissionWFHViewOwn,
		PermissionReportsViewOwn,
	},
	RoleManager: {
		PermissionAttendanceViewAll,
		PermissionCorrectionApprove,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionOvertimeViewAll,
		PermissionOvertimeApprove,
		PermissionLatenessViewAll,
		PermissionLatenessExcuse,
		PermissionShiftManage,
		PermissionShiftApprove,
		PermissionTimesheetApprove,
		PermissionWFHViewAll,
		PermissionWFHApprove,
		PermissionReportsView,
	},
	RoleAdmin: {
		PermissionLocationManage,
		PermissionLeaveManage,
		PermissionHolidayManage,
		PermissionUserManage,
		PermissionJobsRun,
	},
}
