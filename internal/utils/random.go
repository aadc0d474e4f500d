package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/duty-reservation/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleAssistant,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// GenerateRandomCapacityOverride 为从今天起 daysAhead 天内的随机日期生成覆盖值
func GenerateRandomCapacityOverride(editorID int64, daysAhead int) *domain.CapacityOverride {
	date := time.Now().AddDate(0, 0, rand.Intn(daysAhead))

	return &domain.CapacityOverride{
		Date:      domain.FormatDate(date),
		Capacity:  rand.Intn(5),
		UpdatedBy: editorID,
		UpdatedAt: time.Now(),
	}
}

// GenerateRandomReservation 为某个用户在从今天起 daysAhead 天内的随机日期
// 生成一到三个连续时段的预约
func GenerateRandomReservation(userID int64, daysAhead int) *domain.SubmitReservationsData {
	slots := domain.RequestableSlots()
	start := rand.Intn(len(slots))
	count := rand.Intn(3) + 1
	if start+count > len(slots) {
		count = len(slots) - start
	}

	return &domain.SubmitReservationsData{
		UserID:      userID,
		Date:        domain.FormatDate(time.Now().AddDate(0, 0, rand.Intn(daysAhead))),
		Slots:       slots[start : start+count],
		Note:        "随机生成的测试预约",
		SubmittedAt: time.Now(),
	}
}
