package sqlinline

const QUpsertUser = `--sql 8c5e2d90-3f6a-4871-b2c4-a7e91d0f5b68
insert into users(id, email, name, credits, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::int, now(), now())
on conflict (email) do update
set name = excluded.name,
    updated_at = now()
returning id, email, name, credits;
`

const QSelectCredits = `--sql 4b7f9a13-6c2e-4d85-90b3-e15d8f2a6c47
select credits from users where id = $1::uuid;
`

const QDecrementCreditIfPositive = `--sql a3d8f261-9b4c-4e07-8f52-10c6e9b3d784
update users
set credits = credits - 1,
    updated_at = now()
where id = $1::uuid and credits > 0;
`

const QGrantCredits = `--sql f8b2c6e5-0d71-4a39-bc84-57e3a1d9f026
update users
set credits = credits + $2::int,
    updated_at = now()
where id = $1::uuid
returning credits;
`
