package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"panedelivery/internal/database"
	"panedelivery/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "panedelivery.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ad_impressions")
	db.Exec("DELETE FROM slot_bookings")
	db.Exec("DELETE FROM ad_spaces")
	db.Exec("DELETE FROM order_items")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM bakeries")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := createUser(db, "admin@panedelivery.ch", "admin123", domain.RoleAdmin, "Admin", "")
	log.Println("Admin created:", admin.Email, "/ admin123")

	customer := createUser(db, "mara@example.ch", "customer123", domain.RoleCustomer, "Mara Keller", "")
	log.Println("Customer created:", customer.Email, "/ customer123")

	bakers := []domain.User{
		createUser(db, "zopf@bernerbrot.ch", "baker123", domain.RoleBaker, "Res Gerber", ""),
		createUser(db, "gipfeli@zueribeck.ch", "baker123", domain.RoleBaker, "Nina Frei", ""),
	}
	for i := range bakers {
		db.Model(&bakers[i]).Update("profile_status", domain.StatusVerified)
	}

	sponsor := createUser(db, "ads@mehlhandel.ch", "sponsor123", domain.RoleSponsor, "Jon Caduff", "Mehlhandel AG")
	db.Model(&sponsor).Update("profile_status", domain.StatusVerified)
	log.Println("Sponsor created:", sponsor.Email, "/ sponsor123")

	pendingSponsor := createUser(db, "new@werbeagentur.ch", "sponsor123", domain.RoleSponsor, "Lea Marti", "Werbeagentur GmbH")
	log.Println("Pending sponsor created:", pendingSponsor.Email)

	// ================== BAKERIES ==================
	log.Println("Creating bakeries...")

	bakeries := []domain.Bakery{
		{
			OwnerID:     bakers[0].ID,
			Name:        "Berner Brotwerkstatt",
			Description: "Holzofenbrot und Zopf seit 1987",
			Address:     "Kramgasse 12",
			City:        "Bern",
			Phone:       "+41 31 311 22 33",
			IsOpen:      true,
		},
		{
			OwnerID:     bakers[1].ID,
			Name:        "Zuribeck am See",
			Description: "Gipfeli, Sauerteig und Patisserie",
			Address:     "Seefeldstrasse 45",
			City:        "Zurich",
			Phone:       "+41 44 555 66 77",
			IsOpen:      true,
		},
	}
	for i := range bakeries {
		db.Create(&bakeries[i])
	}

	// ================== PRODUCTS ==================
	log.Println("Creating products...")

	products := []domain.Product{
		{BakeryID: bakeries[0].ID, Name: "Butterzopf 500g", Category: "bread", Price: 6.50, Available: true},
		{BakeryID: bakeries[0].ID, Name: "Ruchbrot", Category: "bread", Price: 4.20, Available: true},
		{BakeryID: bakeries[0].ID, Name: "Nusstorte", Category: "pastry", Price: 18.00, Available: false},
		{BakeryID: bakeries[1].ID, Name: "Gipfeli", Category: "pastry", Price: 1.40, Available: true},
		{BakeryID: bakeries[1].ID, Name: "Sauerteigbrot", Category: "bread", Price: 7.80, Available: true},
	}
	for i := range products {
		db.Create(&products[i])
	}

	// ================== AD SPACES ==================
	log.Println("Creating ad spaces...")

	spaces := []domain.AdSpace{
		{Name: "Home hero", Page: "home", CardIndex: 0, HourlyPrices: priceTable(25, 60)},
		{Name: "Home sidebar", Page: "home", CardIndex: 1, HourlyPrices: priceTable(12, 30)},
		{Name: "Catalog banner", Page: "catalog", CardIndex: 0, HourlyPrices: priceTable(8, 20)},
	}
	for i := range spaces {
		db.Create(&spaces[i])
	}

	// One approved booking so the display endpoint has content to show.
	now := time.Now().UTC()
	reviewedAt := now
	booking := domain.SlotBooking{
		AdSpaceID:  spaces[0].ID,
		SlotKey:    domain.SlotKeyFor(now),
		Status:     domain.SlotApproved,
		SponsorID:  sponsor.ID,
		Price:      spaces[0].PriceForHour(now.UTC().Hour()),
		ReservedAt: now.Add(-time.Hour),
		Title:      "Mehlhandel AG: Mehl direkt vom Muller",
		Link:       "https://mehlhandel.example",
		FileURL:    "https://cdn.mehlhandel.example/banner.png",
		ReviewedAt: &reviewedAt,
		ReviewedBy: &admin.ID,
	}
	db.Create(&booking)

	log.Println("Seed completed")
}

func createUser(db *gorm.DB, email, password string, role domain.UserRole, name, company string) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("password hash failed:", err)
	}

	user := domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		CompanyName:  company,
	}
	if user.NeedsVerification() {
		user.ProfileStatus = domain.StatusPending
	}
	db.Create(&user)
	return user
}

// priceTable spreads hour prices between a night floor and a daytime
// peak around noon.
func priceTable(min, max float64) domain.HourlyPrices {
	var prices domain.HourlyPrices
	for hour := 0; hour < 24; hour++ {
		distance := hour - 12
		if distance < 0 {
			distance = -distance
		}
		prices[hour] = max - (max-min)*float64(distance)/12
		prices[hour] = float64(int(prices[hour]*100)) / 100
	}
	return prices
}
