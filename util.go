package rowbinary

func intPtr(n int) *int { return &n }
