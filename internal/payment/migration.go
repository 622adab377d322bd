package payment

import "gorm.io/gorm"

var defaultMethods = []PaymentMethod{
	{PaymentMethodID: "PM-COD", MethodName: "Cash on Delivery"},
	{PaymentMethodID: "PM-CARD", MethodName: "Credit Card"},
	{PaymentMethodID: "PM-BANK", MethodName: "Bank Transfer"},
}

// RunSchemaMigration creates the table and seeds the default methods on first run.
func RunSchemaMigration(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasTable(&PaymentMethod{}) {
		if err := db.AutoMigrate(&PaymentMethod{}); err != nil {
			return err
		}
		if err := db.Create(&defaultMethods).Error; err != nil {
			return err
		}
		return nil
	}

	return db.AutoMigrate(&PaymentMethod{})
}
