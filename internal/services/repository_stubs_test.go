package services

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
)

var errStubStorage = errors.New("stub storage failure")

type dayLogRepositoryStub struct {
	entries   map[string]models.DailyLog
	nextID    uint
	findErr   error
	createErr error
	saveErr   error
	deleteErr error
}

func newDayLogRepositoryStub(logs ...models.DailyLog) *dayLogRepositoryStub {
	stub := &dayLogRepositoryStub{entries: make(map[string]models.DailyLog), nextID: 1}
	for _, entry := range logs {
		entry.ID = stub.nextID
		stub.nextID++
		stub.entries[entry.Date] = entry
	}
	return stub
}

func (stub *dayLogRepositoryStub) sorted(filter func(models.DailyLog) bool) []models.DailyLog {
	logs := make([]models.DailyLog, 0, len(stub.entries))
	for _, entry := range stub.entries {
		if filter == nil || filter(entry) {
			logs = append(logs, entry)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
	return logs
}

func (stub *dayLogRepositoryStub) ListAll() ([]models.DailyLog, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	return stub.sorted(nil), nil
}

func (stub *dayLogRepositoryStub) ListRange(from string, to string) ([]models.DailyLog, error) {
	return stub.sorted(func(entry models.DailyLog) bool {
		return (from == "" || entry.Date >= from) && (to == "" || entry.Date <= to)
	}), nil
}

func (stub *dayLogRepositoryStub) FindByDate(date string) (models.DailyLog, bool, error) {
	if stub.findErr != nil {
		return models.DailyLog{}, false, stub.findErr
	}
	entry, ok := stub.entries[date]
	return entry, ok, nil
}

func (stub *dayLogRepositoryStub) Create(entry *models.DailyLog) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = stub.nextID
	stub.nextID++
	stub.entries[entry.Date] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) Save(entry *models.DailyLog) error {
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.entries[entry.Date] = *entry
	return nil
}

func (stub *dayLogRepositoryStub) DeleteByDate(date string) (bool, error) {
	if stub.deleteErr != nil {
		return false, stub.deleteErr
	}
	if _, ok := stub.entries[date]; !ok {
		return false, nil
	}
	delete(stub.entries, date)
	return true, nil
}

type settingsRepositoryStub struct {
	values  map[string]string
	listErr error
	putErr  error
}

func newSettingsRepositoryStub(values map[string]string) *settingsRepositoryStub {
	if values == nil {
		values = map[string]string{}
	}
	return &settingsRepositoryStub{values: values}
}

func (stub *settingsRepositoryStub) ListAll() ([]models.Setting, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	settings := make([]models.Setting, 0, len(stub.values))
	for key, value := range stub.values {
		settings = append(settings, models.Setting{Key: key, Value: value})
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Key < settings[j].Key
	})
	return settings, nil
}

func (stub *settingsRepositoryStub) PutMany(settings []models.Setting) error {
	if stub.putErr != nil {
		return stub.putErr
	}
	for _, setting := range settings {
		stub.values[setting.Key] = setting.Value
	}
	return nil
}

type symptomRepositoryStub struct {
	symptoms []models.CustomSymptom
	nextID   uint
	err      error
}

func newSymptomRepositoryStub(labels ...string) *symptomRepositoryStub {
	stub := &symptomRepositoryStub{nextID: 1}
	for _, label := range labels {
		stub.symptoms = append(stub.symptoms, models.CustomSymptom{ID: stub.nextID, Label: label})
		stub.nextID++
	}
	return stub
}

func (stub *symptomRepositoryStub) List() ([]models.CustomSymptom, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return append([]models.CustomSymptom(nil), stub.symptoms...), nil
}

func (stub *symptomRepositoryStub) FindByLabel(label string) (models.CustomSymptom, bool, error) {
	if stub.err != nil {
		return models.CustomSymptom{}, false, stub.err
	}
	for _, symptom := range stub.symptoms {
		if symptom.Label == label {
			return symptom, true, nil
		}
	}
	return models.CustomSymptom{}, false, nil
}

func (stub *symptomRepositoryStub) Create(symptom *models.CustomSymptom) error {
	if stub.err != nil {
		return stub.err
	}
	symptom.ID = stub.nextID
	stub.nextID++
	stub.symptoms = append(stub.symptoms, *symptom)
	return nil
}

func (stub *symptomRepositoryStub) Delete(id uint) (bool, error) {
	if stub.err != nil {
		return false, stub.err
	}
	for index, symptom := range stub.symptoms {
		if symptom.ID == id {
			stub.symptoms = append(stub.symptoms[:index], stub.symptoms[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type backupStoreStub struct {
	settings []models.Setting
	logs     []models.DailyLog
	symptoms []models.CustomSymptom
	cleared  bool
	err      error
}

func (stub *backupStoreStub) ReplaceAll(settings []models.Setting, logs []models.DailyLog, symptoms []models.CustomSymptom) error {
	if stub.err != nil {
		return stub.err
	}
	stub.settings = settings
	stub.logs = logs
	stub.symptoms = symptoms
	return nil
}

func (stub *backupStoreStub) ClearAll() error {
	if stub.err != nil {
		return stub.err
	}
	stub.cleared = true
	return nil
}

type credentialRepositoryStub struct {
	hash    string
	saves   int
	loadErr error
}

func (stub *credentialRepositoryStub) Load() (models.OwnerCredential, bool, error) {
	if stub.loadErr != nil {
		return models.OwnerCredential{}, false, stub.loadErr
	}
	if stub.hash == "" {
		return models.OwnerCredential{}, false, nil
	}
	return models.OwnerCredential{ID: 1, PassphraseHash: stub.hash}, true, nil
}

func (stub *credentialRepositoryStub) SavePassphraseHash(hash string) error {
	stub.hash = hash
	stub.saves++
	return nil
}

type notificationRepositoryStub struct {
	notifications []models.Notification
	delivered     map[uint]time.Time
	nextID        uint
}

func newNotificationRepositoryStub() *notificationRepositoryStub {
	return &notificationRepositoryStub{delivered: map[uint]time.Time{}, nextID: 1}
}

func (stub *notificationRepositoryStub) ListRecent(limit int) ([]models.Notification, error) {
	result := append([]models.Notification(nil), stub.notifications...)
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (stub *notificationRepositoryStub) CreateIfAbsent(notification *models.Notification) (bool, error) {
	for _, existing := range stub.notifications {
		if existing.Kind == notification.Kind && existing.ForDate == notification.ForDate {
			return false, nil
		}
	}
	notification.ID = stub.nextID
	stub.nextID++
	stub.notifications = append(stub.notifications, *notification)
	return true, nil
}

func (stub *notificationRepositoryStub) MarkDelivered(id uint, deliveredAt time.Time) error {
	stub.delivered[id] = deliveredAt
	for index := range stub.notifications {
		if stub.notifications[index].ID == id {
			stub.notifications[index].DeliveredAt = &deliveredAt
		}
	}
	return nil
}

func (stub *notificationRepositoryStub) ListUndelivered(forDate string) ([]models.Notification, error) {
	result := make([]models.Notification, 0)
	for _, notification := range stub.notifications {
		if notification.ForDate == forDate && notification.DeliveredAt == nil {
			result = append(result, notification)
		}
	}
	return result, nil
}

// messageCatalogStub renders keys and params verbatim so tests can assert on them.
type messageCatalogStub struct{}

func (messageCatalogStub) Translate(_ string, key string) string {
	return key
}

func (messageCatalogStub) Format(language string, key string, params map[string]int) string {
	keys := make([]string, 0, len(params))
	for name := range params {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	rendered := language + ":" + key
	for _, name := range keys {
		rendered += " " + name + "=" + strconv.Itoa(params[name])
	}
	return rendered
}
