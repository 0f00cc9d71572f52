package enums

import "fmt"

// ItemCategory classifies an inventory item.
type ItemCategory string

const (
	ItemCategoryHardware ItemCategory = "Hardware"
	ItemCategorySoftware ItemCategory = "Software"
	ItemCategoryNetwork  ItemCategory = "Network"
)

var validItemCategories = []ItemCategory{
	ItemCategoryHardware,
	ItemCategorySoftware,
	ItemCategoryNetwork,
}

// IsValid checks whether the given category matches the canonical enum.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw strings into ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}

// ItemCategories returns the canonical category values in display order.
func ItemCategories() []ItemCategory {
	return append([]ItemCategory(nil), validItemCategories...)
}

// ItemStatus tracks where an item is in its lifecycle.
type ItemStatus string

const (
	ItemStatusInUse       ItemStatus = "In Use"
	ItemStatusAvailable   ItemStatus = "Available"
	ItemStatusMaintenance ItemStatus = "Maintenance"
)

var validItemStatuses = []ItemStatus{
	ItemStatusInUse,
	ItemStatusAvailable,
	ItemStatusMaintenance,
}

func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}

func ItemStatuses() []ItemStatus {
	return append([]ItemStatus(nil), validItemStatuses...)
}

// Department owns an item.
type Department string

const (
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentIT         Department = "IT"
	DepartmentMarketing  Department = "Marketing"
	DepartmentOperations Department = "Operations"
)

var validDepartments = []Department{
	DepartmentHR,
	DepartmentFinance,
	DepartmentIT,
	DepartmentMarketing,
	DepartmentOperations,
}

func (d Department) IsValid() bool {
	for _, candidate := range validDepartments {
		if candidate == d {
			return true
		}
	}
	return false
}

func ParseDepartment(value string) (Department, error) {
	for _, candidate := range validDepartments {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid department %q", value)
}

func Departments() []Department {
	return append([]Department(nil), validDepartments...)
}
