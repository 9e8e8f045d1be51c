package watchlist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vigil/internal/screening/models"
)

// SampleRecords returns a small built-in data set covering the major list
// sources, so the service is runnable before any ingest pipeline exists.
func SampleRecords() []models.WatchlistRecord {
	return []models.WatchlistRecord{
		{
			ListName: "OFAC SDN List", Source: "OFAC", Country: "United States",
			Name:    "Osama bin Laden",
			Aliases: []string{"Usama bin Laden", "Osama bin Ladin"},
			DateOfBirth: "1957-03-10", Nationality: "Saudi Arabian",
			Type: models.EntityIndividual, DesignationDate: "1999-01-20",
			Reason: "Terrorism - Leader of al-Qaeda", Active: true,
		},
		{
			ListName: "OFAC SDN List", Source: "OFAC", Country: "United States",
			Name:    "Ayman al-Zawahiri",
			Aliases: []string{"Ayman al-Zawahri", "Dr. Ayman al-Zawahiri"},
			DateOfBirth: "1951-06-19", Nationality: "Egyptian",
			Type: models.EntityIndividual, DesignationDate: "2001-09-23",
			Reason: "Terrorism - al-Qaeda leadership", Active: true,
		},
		{
			ListName: "UN Security Council", Source: "UN", Country: "International",
			Name:    "Kim Jong-un",
			Aliases: []string{"Kim Jong Un", "Kim Jong Eun"},
			DateOfBirth: "1984-01-08", Nationality: "North Korean",
			Type: models.EntityIndividual, DesignationDate: "2017-12-22",
			Reason: "Nuclear proliferation - DPRK leadership", Active: true,
		},
		{
			ListName: "EU Sanctions", Source: "EU", Country: "European Union",
			Name:    "Vladimir Putin",
			Aliases: []string{"Vladimir Vladimirovich Putin"},
			DateOfBirth: "1952-10-07", Nationality: "Russian",
			Type: models.EntityIndividual, DesignationDate: "2022-02-25",
			Reason: "Aggression against Ukraine", Active: true,
		},
		{
			ListName: "OFAC SDN List", Source: "OFAC", Country: "United States",
			Name:    "Hezbollah",
			Aliases: []string{"Hizballah", "Party of God"},
			Type: models.EntityOrganization, DesignationDate: "1997-10-31",
			Reason: "Terrorism - Foreign terrorist organization", Active: true,
		},
		{
			ListName: "OFAC SDN List", Source: "OFAC", Country: "United States",
			Name:    "John Smith",
			Aliases: []string{"Johnny Smith", "J. Smith"},
			DateOfBirth: "1975-05-15", Nationality: "American",
			Type: models.EntityIndividual, DesignationDate: "2020-01-15",
			Reason: "Narcotics trafficking", Active: true,
		},
	}
}

// seedFile is the YAML shape for external seed bundles.
type seedFile struct {
	Records []seedRecord `yaml:"records"`
}

type seedRecord struct {
	ListName        string   `yaml:"list_name"`
	Source          string   `yaml:"source"`
	Country         string   `yaml:"country"`
	Name            string   `yaml:"name"`
	Aliases         []string `yaml:"aliases"`
	DateOfBirth     string   `yaml:"date_of_birth"`
	Nationality     string   `yaml:"nationality"`
	PassportNumber  string   `yaml:"passport_number"`
	EntityType      string   `yaml:"entity_type"`
	DesignationDate string   `yaml:"designation_date"`
	Reason          string   `yaml:"reason"`
	Active          *bool    `yaml:"active"`
}

// LoadSeedFile reads watchlist records from a YAML bundle. Records default to
// active and individual unless the file says otherwise.
func LoadSeedFile(path string) ([]models.WatchlistRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	records := make([]models.WatchlistRecord, 0, len(f.Records))
	for _, sr := range f.Records {
		r := models.WatchlistRecord{
			ListName:        sr.ListName,
			Source:          sr.Source,
			Country:         sr.Country,
			Name:            sr.Name,
			Aliases:         sr.Aliases,
			DateOfBirth:     sr.DateOfBirth,
			Nationality:     sr.Nationality,
			PassportNumber:  sr.PassportNumber,
			Type:            models.EntityIndividual,
			DesignationDate: sr.DesignationDate,
			Reason:          sr.Reason,
			Active:          true,
		}
		if sr.EntityType != "" {
			r.Type = models.EntityType(sr.EntityType)
		}
		if sr.Active != nil {
			r.Active = *sr.Active
		}
		records = append(records, r)
	}
	return records, nil
}
