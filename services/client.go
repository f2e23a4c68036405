package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"RoboScan360/config/redis"
	"RoboScan360/models"
	"RoboScan360/role"
	"RoboScan360/util"
)

// ClientService manages a client's catalogs. Reads go through the cache,
// writes replace the cached copy.
type ClientService struct {
	clients   ClientStore
	directory *Directory
	cache     *redis.Cache
}

func NewClientService(clients ClientStore, directory *Directory, cache *redis.Cache) *ClientService {
	return &ClientService{clients: clients, directory: directory, cache: cache}
}

func clientKey(id int64) string {
	return util.ClientKey + strconv.FormatInt(id, 10)
}

func (s *ClientService) refresh(ctx context.Context, client *models.Client) {
	if err := s.cache.SetCache(ctx, clientKey(client.ID), client); err != nil {
		log.Warn().Err(err).Int64("clientId", client.ID).Msg("failed caching client")
	}
}

/*
* Check in cache, if exists return it
* If not exists fetch from database and set in cache
 */
func (s *ClientService) FetchClient(ctx context.Context, actor models.Actor) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ViewCatalog)
	if err != nil {
		return nil, err
	}
	cached := &models.Client{}
	exists, err := s.cache.GetCache(ctx, clientKey(staff.ClientID), cached)
	if err != nil {
		log.Warn().Err(err).Int64("clientId", staff.ClientID).Msg("error while reading client cache")
	}
	if exists {
		return &util.Outcome{Message: "Client fetched successfully", Data: cached}, nil
	}
	client, err := s.clients.FindByID(ctx, staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while fetching client")
		return nil, err
	}
	if client == nil {
		return nil, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
	}
	s.refresh(ctx, client)
	return &util.Outcome{Message: "Client fetched successfully", Data: client}, nil
}

// catalogWrite runs one catalog mutation for the actor's client.
func (s *ClientService) catalogWrite(ctx context.Context, actor models.Actor, message string, write func(clientID int64) (*models.Client, error)) (*util.Outcome, error) {
	staff, err := s.directory.ResolveAuthorized(ctx, actor, role.ManageCatalog)
	if err != nil {
		return nil, err
	}
	client, err := write(staff.ClientID)
	if err != nil {
		log.Error().Err(err).Int64("clientId", staff.ClientID).Msg("error while updating client catalog")
		return nil, err
	}
	s.refresh(ctx, client)
	return &util.Outcome{Message: message, Data: client}, nil
}

func (s *ClientService) AddScanType(ctx context.Context, actor models.Actor, scanType string) (*util.Outcome, error) {
	scanType = strings.TrimSpace(scanType)
	if scanType == "" {
		return nil, util.NewError(util.KindInvalid, util.INVALID_SCAN_TYPE)
	}
	return s.catalogWrite(ctx, actor, "Scan type added successfully", func(clientID int64) (*models.Client, error) {
		current, err := s.clients.FindByID(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
		}
		if current.HasScanType(scanType) {
			return nil, util.NewError(util.KindInvalid, util.SCAN_TYPE_ALREADY_EXISTS)
		}
		return notFoundIfNil(s.clients.AddScanType(ctx, clientID, scanType))
	})
}

func (s *ClientService) RemoveScanType(ctx context.Context, actor models.Actor, scanType string) (*util.Outcome, error) {
	return s.catalogWrite(ctx, actor, "Scan type removed successfully", func(clientID int64) (*models.Client, error) {
		return notFoundIfNil(s.clients.RemoveScanType(ctx, clientID, scanType))
	})
}

func (s *ClientService) AddDepartment(ctx context.Context, actor models.Actor, name string) (*util.Outcome, error) {
	return s.catalogWrite(ctx, actor, "Department added successfully", func(clientID int64) (*models.Client, error) {
		id, err := s.clients.NextCatalogID(ctx)
		if err != nil {
			return nil, err
		}
		return notFoundIfNil(s.clients.AddDepartment(ctx, clientID, models.Department{ID: id, Name: name}))
	})
}

func (s *ClientService) ArchiveDepartment(ctx context.Context, actor models.Actor, departmentID int64) (*util.Outcome, error) {
	return s.catalogWrite(ctx, actor, "Department archived successfully", func(clientID int64) (*models.Client, error) {
		client, err := s.clients.ArchiveDepartment(ctx, clientID, departmentID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, util.NewError(util.KindNotFound, util.DEPARTMENT_NOT_FOUND)
		}
		return client, nil
	})
}

func (s *ClientService) AddReportTemplate(ctx context.Context, actor models.Actor, name, body string) (*util.Outcome, error) {
	return s.catalogWrite(ctx, actor, "Report template added successfully", func(clientID int64) (*models.Client, error) {
		id, err := s.clients.NextCatalogID(ctx)
		if err != nil {
			return nil, err
		}
		return notFoundIfNil(s.clients.AddReportTemplate(ctx, clientID, models.ReportTemplate{ID: id, Name: name, Body: body}))
	})
}

func (s *ClientService) ArchiveReportTemplate(ctx context.Context, actor models.Actor, templateID int64) (*util.Outcome, error) {
	return s.catalogWrite(ctx, actor, "Report template archived successfully", func(clientID int64) (*models.Client, error) {
		client, err := s.clients.ArchiveReportTemplate(ctx, clientID, templateID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, util.NewError(util.KindNotFound, util.TEMPLATE_NOT_FOUND)
		}
		return client, nil
	})
}

func notFoundIfNil(client *models.Client, err error) (*models.Client, error) {
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, util.NewError(util.KindNotFound, util.CLIENT_NOT_FOUND)
	}
	return client, nil
}
