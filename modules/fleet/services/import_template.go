package services

import (
	"context"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/vehicleimport"
)

var templateColumns = []struct {
	Name        string
	Sample      string
	Description string
}{
	{vehicleimport.ColRegistrationNo, "KAB 123X", "Unique registration number. Required."},
	{vehicleimport.ColMake, "Toyota", "Manufacturer. Required."},
	{vehicleimport.ColModel, "Hilux", "Model. Required."},
	{vehicleimport.ColYear, "2018", "Year of manufacture, 1900 to next year. Required."},
	{vehicleimport.ColChassisNo, "JTFDE626300123456", "Chassis number. Required."},
	{vehicleimport.ColEngineNo, "2GD4123456", "Engine number. Required."},
	{vehicleimport.ColBodyType, "Pickup", "Body type name; falls back to the default value when blank."},
	{vehicleimport.ColCategory, "Commercial", "Vehicle category name; falls back to the default value when blank."},
	{vehicleimport.ColVehicleType, "Truck", "Vehicle type name; falls back to the default value when blank."},
	{vehicleimport.ColClient, "Acme Ltd", "Owner name. Required unless a client was pre-selected."},
	{vehicleimport.ColSeatingCapacity, "3", "Optional positive number."},
	{vehicleimport.ColCubicCapacity, "2755", "Optional positive number."},
	{vehicleimport.ColGrossWeight, "3050.5", "Optional positive number."},
	{vehicleimport.ColReceivedAt, "15/01/2024", "Optional date, DD/MM/YYYY or a spreadsheet date cell."},
}

// Template builds the guidance workbook: a sample data sheet, a column
// description sheet, and one sheet per reference kind listing the
// currently accepted values.
func (s *VehicleImportService) Template(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()

	const dataSheet = "vehicles"
	f.SetSheetName("Sheet1", dataSheet)
	for i, col := range templateColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(dataSheet, cell, col.Name)
		cell, _ = excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(dataSheet, cell, col.Sample)
	}

	const descSheet = "columns"
	if _, err := f.NewSheet(descSheet); err != nil {
		return nil, err
	}
	_ = f.SetCellValue(descSheet, "A1", "column")
	_ = f.SetCellValue(descSheet, "B1", "description")
	for i, col := range templateColumns {
		_ = f.SetCellValue(descSheet, "A"+cellRow(i+2), col.Name)
		_ = f.SetCellValue(descSheet, "B"+cellRow(i+2), col.Description)
	}

	for _, kind := range []reference.Kind{reference.KindBodyType, reference.KindVehicleCategory, reference.KindVehicleType} {
		values, err := s.references.GetAllActiveByKind(ctx, kind)
		if err != nil {
			return nil, err
		}
		sheet := string(kind)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		_ = f.SetCellValue(sheet, "A1", "name")
		_ = f.SetCellValue(sheet, "B1", "id")
		for i, v := range values {
			_ = f.SetCellValue(sheet, "A"+cellRow(i+2), v.Name())
			_ = f.SetCellValue(sheet, "B"+cellRow(i+2), v.ID().String())
		}
	}

	return f, nil
}

func cellRow(n int) string {
	return strconv.Itoa(n)
}
