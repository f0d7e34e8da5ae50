package importer

import (
	"bytes"
	"testing"

	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/internal/app/service"
	"github.com/ikkim/gadgetshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupImporterTest(t *testing.T) service.CatalogService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedTestDB(testDB))

	return service.NewCatalogService(
		testDB,
		repository.NewCategoryRepository(testDB),
		repository.NewProductRegistry(testDB),
		repository.NewCartRepository(testDB),
	)
}

func writeSheet(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
}

func workbook(t *testing.T) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Laptops"))
	writeSheet(t, f, "Laptops", [][]interface{}{
		{"name", "slug", "price", "diagonal", "display_type", "processor_freq", "ram", "video", "time_battery"},
		{"Air 13", "air-13", "1299.99", "13\"", "IPS", "3.2 GHz", "16 GB", "Integrated", "18 h"},
		{},
		{"Broken", "Not A Slug", "10", "13\"", "IPS", "3 GHz", "8 GB", "Integrated", "5 h"},
	})

	_, err := f.NewSheet("smartphone")
	require.NoError(t, err)
	writeSheet(t, f, "smartphone", [][]interface{}{
		{"name", "slug", "price", "diagonal", "display_type", "resolution", "ram", "accum_volume", "main_cam_mp", "frontal_cam_mp", "sd", "category"},
		{"Pixel", "pixel", "699", "6.2\"", "OLED", "2400x1080", "8 GB", "4500 mAh", "50", "10.5", "false", "smartphones"},
		{"Other", "other", "99", "6\"", "LCD", "1600x720", "3 GB", "5000 mAh", "13", "5", "", "missing-category"},
	})

	_, err = f.NewSheet("Notes")
	require.NoError(t, err)
	writeSheet(t, f, "Notes", [][]interface{}{{"ignored"}})

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImporter_ReadAndImport(t *testing.T) {
	catalog := setupImporterTest(t)
	im := New(catalog)

	entries, rowErrors, err := im.Read(workbook(t))
	require.NoError(t, err)
	assert.Empty(t, rowErrors)
	require.Len(t, entries, 4)

	assert.Equal(t, model.VariantLaptop, entries[0].Variant)
	assert.Equal(t, "laptops", entries[0].Category)
	assert.Equal(t, 2, entries[0].Row)
	assert.Equal(t, 4, entries[1].Row)

	phone := entries[2].Product.(*model.Smartphone)
	assert.False(t, phone.SD)
	// SD defaults to true when the column is empty
	assert.True(t, entries[3].Product.(*model.Smartphone).SD)

	created, failed := im.Import(entries)
	assert.Equal(t, 2, created)
	require.Len(t, failed, 2)
	assert.Equal(t, 4, failed[0].Row)
	assert.ErrorIs(t, failed[0], service.ErrValidation)
	assert.ErrorIs(t, failed[1], service.ErrCategoryNotFound)

	laptop, err := catalog.GetProductBySlug(model.VariantLaptop, "air-13")
	require.NoError(t, err)
	assert.Equal(t, "1299.99", laptop.Common().Price.String())

	_, err = catalog.GetProductBySlug(model.VariantSmartphone, "pixel")
	assert.NoError(t, err)
}

func TestImporter_InvalidRow(t *testing.T) {
	catalog := setupImporterTest(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "laptop"))
	writeSheet(t, f, "laptop", [][]interface{}{
		{"name", "price"},
		{"Bad price", "abc"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	entries, rowErrors, err := New(catalog).Read(buf)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Len(t, rowErrors, 1)
	assert.Equal(t, "laptop", rowErrors[0].Sheet)
	assert.Equal(t, 2, rowErrors[0].Row)
}

func TestImporter_NotAWorkbook(t *testing.T) {
	_, _, err := New(setupImporterTest(t)).Read(bytes.NewBufferString("plain text"))
	assert.Error(t, err)
}

func TestImporter_SlugFromName(t *testing.T) {
	catalog := setupImporterTest(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "laptops"))
	writeSheet(t, f, "laptops", [][]interface{}{
		{"name", "slug", "price", "diagonal", "display_type", "processor_freq", "ram", "video", "time_battery"},
		{"ZenBook 14 (2024) OLED", "", "999", "14\"", "OLED", "3.1 GHz", "16 GB", "Integrated", "15 h"},
		{"Given Slug", "kept-slug", "999", "14\"", "OLED", "3.1 GHz", "16 GB", "Integrated", "15 h"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	im := New(catalog)
	entries, rowErrors, err := im.Read(buf)
	require.NoError(t, err)
	require.Empty(t, rowErrors)
	require.Len(t, entries, 2)
	assert.Equal(t, "zenbook-14-2024-oled", entries[0].Product.Common().Slug)
	assert.Equal(t, "kept-slug", entries[1].Product.Common().Slug)

	created, failed := im.Import(entries)
	assert.Equal(t, 2, created)
	assert.Empty(t, failed)

	_, err = catalog.GetProductBySlug(model.VariantLaptop, "zenbook-14-2024-oled")
	assert.NoError(t, err)
}
